// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

// # Typed Singles
//
// Shapes of the built-in single types as the public site reads them, with
// the placeholder content shown when the API is unreachable.

// Address is the postal address block of [ContactInfo].
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// SocialLink is one entry of [ContactInfo.Social].
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ContactInfo is the contact_info single.
type ContactInfo struct {
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	Address      Address      `json:"address"`
	OpeningHours string       `json:"opening_hours,omitempty"`
	MapURL       string       `json:"map_url,omitempty"`
	Social       []SocialLink `json:"social,omitempty"`
}

// Announcement is the banner block of [SiteSettings].
type Announcement struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message,omitempty"`
	Link    string `json:"link,omitempty"`
}

// SiteSettings is the site_settings single.
type SiteSettings struct {
	SiteName     string       `json:"site_name"`
	Tagline      string       `json:"tagline,omitempty"`
	Logo         string       `json:"logo,omitempty"`
	Favicon      string       `json:"favicon,omitempty"`
	Announcement Announcement `json:"announcement"`
}

// DefaultContactInfo is rendered when contact_info cannot be fetched.
var DefaultContactInfo = ContactInfo{
	Phone: "+44 161 399 2348",
	Email: "hello@example.com",
	Address: Address{
		Line1:    "1 Spinningfields",
		City:     "Manchester",
		Postcode: "M3 3AP",
		Country:  "United Kingdom",
	},
	OpeningHours: "Mon-Fri 09:00-17:30",
}

// DefaultSiteSettings is rendered when site_settings cannot be fetched.
var DefaultSiteSettings = SiteSettings{
	SiteName: "Folio",
}
