// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

import "github.com/taibuivan/folio/internal/content/schema"

// Built-in content type slugs.
const (
	Sector       = "sector"
	Product      = "product"
	BlogPost     = "blog_post"
	Page         = "page"
	Testimonial  = "testimonial"
	FAQ          = "faq"
	ContactInfo  = "contact_info"
	SiteSettings = "site_settings"
	Homepage     = "homepage"
)

// Shorthands keep the definitions below readable.
func text(name, label string) schema.FieldDefinition {
	return schema.FieldDefinition{Name: name, Label: label, Type: schema.TypeText}
}

func required(field schema.FieldDefinition) schema.FieldDefinition {
	field.Required = true
	return field
}

func typed(name, label string, fieldType schema.FieldType) schema.FieldDefinition {
	return schema.FieldDefinition{Name: name, Label: label, Type: fieldType}
}

func seoGroup() schema.FieldDefinition {
	return schema.FieldDefinition{
		Name: "seo", Label: "SEO", Type: schema.TypeGroup,
		GroupFields: []schema.FieldDefinition{
			text("meta_title", "Meta Title"),
			typed("meta_description", "Meta Description", schema.TypeTextarea),
			typed("og_image", "Social Image", schema.TypeImage),
		},
	}
}

// BuiltIn returns fresh copies of the content types shipped with Folio.
func BuiltIn() []schema.ContentTypeDefinition {
	return []schema.ContentTypeDefinition{
		{
			Slug: Sector, Name: "Sector", NamePlural: "Sectors", Icon: "factory",
			Description: "Industries served, shown on the home page and the sectors index.",
			Fields: []schema.FieldDefinition{
				required(text("title", "Title")),
				required(typed("description", "Description", schema.TypeTextarea)),
				required(typed("image", "Image", schema.TypeImage)),
				required(typed("link", "Link", schema.TypeURL)),
				typed("body", "Body", schema.TypeRichText),
				{
					Name: "highlights", Label: "Highlights", Type: schema.TypeArray,
					ArrayFields: []schema.FieldDefinition{text("highlight", "Highlight")},
				},
				seoGroup(),
			},
		},
		{
			Slug: Product, Name: "Product", NamePlural: "Products", Icon: "package",
			Description: "Catalogue items with specifications and downloads.",
			Fields: []schema.FieldDefinition{
				required(text("title", "Title")),
				text("subtitle", "Subtitle"),
				required(typed("summary", "Summary", schema.TypeTextarea)),
				typed("description", "Description", schema.TypeRichText),
				typed("image", "Image", schema.TypeImage),
				{
					Name: "gallery", Label: "Gallery", Type: schema.TypeArray,
					ArrayFields: []schema.FieldDefinition{typed("image", "Image", schema.TypeImage)},
				},
				{
					Name: "category", Label: "Category", Type: schema.TypeSelect,
					Options: []string{"pumps", "valves", "controls", "services"},
				},
				{
					Name: "specifications", Label: "Specifications", Type: schema.TypeArray,
					ArrayFields: []schema.FieldDefinition{text("label", "Label"), text("value", "Value")},
				},
				{
					Name: "features", Label: "Features", Type: schema.TypeArray,
					ArrayFields: []schema.FieldDefinition{text("feature", "Feature")},
				},
				typed("datasheet", "Datasheet URL", schema.TypeURL),
				typed("price", "Price", schema.TypeNumber),
				typed("featured", "Featured", schema.TypeBoolean),
				seoGroup(),
			},
		},
		{
			Slug: BlogPost, Name: "Blog Post", NamePlural: "Blog Posts", Icon: "newspaper",
			Description: "News and articles.",
			Fields: []schema.FieldDefinition{
				required(text("title", "Title")),
				required(typed("excerpt", "Excerpt", schema.TypeTextarea)),
				required(typed("content", "Content", schema.TypeRichText)),
				typed("cover_image", "Cover Image", schema.TypeImage),
				text("author", "Author"),
				typed("published_date", "Published Date", schema.TypeDate),
				{
					Name: "tags", Label: "Tags", Type: schema.TypeArray,
					ArrayFields: []schema.FieldDefinition{text("tag", "Tag")},
				},
				seoGroup(),
			},
		},
		{
			Slug: Page, Name: "Page", NamePlural: "Pages", Icon: "file-text",
			Description: "Free-form static pages built from sections.",
			Fields: []schema.FieldDefinition{
				required(text("title", "Title")),
				{
					Name: "hero", Label: "Hero", Type: schema.TypeGroup,
					GroupFields: []schema.FieldDefinition{
						text("heading", "Heading"),
						typed("subheading", "Subheading", schema.TypeTextarea),
						typed("image", "Background Image", schema.TypeImage),
					},
				},
				{
					Name: "sections", Label: "Sections", Type: schema.TypeArray,
					ArrayFields: []schema.FieldDefinition{
						text("heading", "Heading"),
						typed("content", "Content", schema.TypeRichText),
						typed("image", "Image", schema.TypeImage),
					},
				},
				seoGroup(),
			},
		},
		{
			Slug: Testimonial, Name: "Testimonial", NamePlural: "Testimonials", Icon: "quote",
			Description: "Customer quotes.",
			Fields: []schema.FieldDefinition{
				required(typed("quote", "Quote", schema.TypeTextarea)),
				required(text("author", "Author")),
				text("company", "Company"),
				text("role", "Role"),
				typed("logo", "Logo", schema.TypeImage),
				{Name: "rating", Label: "Rating", Type: schema.TypeNumber, DefaultValue: 5.0},
			},
		},
		{
			Slug: FAQ, Name: "FAQ", NamePlural: "FAQs", Icon: "help-circle",
			Description: "Frequently asked questions.",
			Fields: []schema.FieldDefinition{
				required(text("question", "Question")),
				required(typed("answer", "Answer", schema.TypeRichText)),
				{
					Name: "category", Label: "Category", Type: schema.TypeSelect,
					Options: []string{"general", "products", "support"}, DefaultValue: "general",
				},
			},
		},
		{
			Slug: ContactInfo, Name: "Contact Information", NamePlural: "Contact Information", Icon: "phone",
			Description: "Company address and contact channels.", IsSingle: true,
			Fields: []schema.FieldDefinition{
				required(text("phone", "Phone")),
				required(typed("email", "Email", schema.TypeEmail)),
				{
					Name: "address", Label: "Address", Type: schema.TypeGroup,
					GroupFields: []schema.FieldDefinition{
						text("line1", "Line 1"),
						text("line2", "Line 2"),
						text("city", "City"),
						text("postcode", "Postcode"),
						text("country", "Country"),
					},
				},
				typed("opening_hours", "Opening Hours", schema.TypeTextarea),
				typed("map_url", "Map URL", schema.TypeURL),
				{
					Name: "social", Label: "Social Links", Type: schema.TypeArray,
					ArrayFields: []schema.FieldDefinition{
						{Name: "platform", Label: "Platform", Type: schema.TypeSelect, Options: []string{"linkedin", "x", "facebook", "youtube", "instagram"}},
						typed("url", "URL", schema.TypeURL),
					},
				},
			},
		},
		{
			Slug: SiteSettings, Name: "Site Settings", NamePlural: "Site Settings", Icon: "settings",
			Description: "Site-wide metadata and announcement banner.", IsSingle: true,
			Fields: []schema.FieldDefinition{
				required(text("site_name", "Site Name")),
				text("tagline", "Tagline"),
				typed("logo", "Logo", schema.TypeImage),
				typed("favicon", "Favicon", schema.TypeImage),
				{
					Name: "announcement", Label: "Announcement", Type: schema.TypeGroup,
					GroupFields: []schema.FieldDefinition{
						{Name: "enabled", Label: "Enabled", Type: schema.TypeBoolean, DefaultValue: false},
						text("message", "Message"),
						typed("link", "Link", schema.TypeURL),
					},
				},
				{Name: "analytics", Label: "Analytics Settings", Type: schema.TypeJSON, Help: "Raw JSON passed to the analytics snippet."},
			},
		},
		{
			Slug: Homepage, Name: "Homepage", NamePlural: "Homepage", Icon: "home",
			Description: "Hero, statistics and featured content of the landing page.", IsSingle: true,
			Fields: []schema.FieldDefinition{
				{
					Name: "hero", Label: "Hero", Type: schema.TypeGroup,
					GroupFields: []schema.FieldDefinition{
						required(text("heading", "Heading")),
						typed("subheading", "Subheading", schema.TypeTextarea),
						typed("image", "Background Image", schema.TypeImage),
						text("cta_label", "Button Label"),
						typed("cta_link", "Button Link", schema.TypeURL),
					},
				},
				{
					Name: "stats", Label: "Statistics", Type: schema.TypeArray,
					ArrayFields: []schema.FieldDefinition{text("value", "Value"), text("label", "Label")},
				},
				typed("intro", "Introduction", schema.TypeRichText),
				{
					Name: "featured_sectors", Label: "Featured Sectors", Type: schema.TypeArray,
					ArrayFields: []schema.FieldDefinition{text("slug", "Sector Slug")},
					Help:        "Slugs of sector entries to highlight.",
				},
			},
		},
	}
}
