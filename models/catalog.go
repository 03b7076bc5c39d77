package models

// Package describes a bookable DJ package.
type Package struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	BasePrice   int    `json:"basePrice"`   // Whole dollars
	FlatDeposit int    `json:"flatDeposit"` // Deposit used by the create-at-checkout path
}

// PackageCatalog is the fixed set of bookable packages.
var PackageCatalog = map[string]Package{
	"essentialVibe": {Key: "essentialVibe", DisplayName: "Essential Vibe", BasePrice: 495, FlatDeposit: 250},
	"premiumVibe":   {Key: "premiumVibe", DisplayName: "Premium Vibe", BasePrice: 795, FlatDeposit: 400},
	"ultimateVibe":  {Key: "ultimateVibe", DisplayName: "Ultimate Vibe", BasePrice: 1295, FlatDeposit: 650},
}

// AddOnPrices maps add-on display names to their price in whole dollars.
// Unknown names are silently dropped at intake and contribute 0.
var AddOnPrices = map[string]int{
	"Basic Lighting Package":   125,
	"Premium Lighting Package": 250,
	"Fog Machine":              75,
	"Photo Booth":              400,
	"Extra Event Hour":         150,
	"Custom Playlist Curation": 100,
	"MC Services":              200,
}

// USStateCodes is the fixed set of valid 2-letter US state and territory codes.
var USStateCodes = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true, "PR": true, "VI": true, "GU": true,
	"AS": true, "MP": true,
}
