package services

import (
	"strings"
)

// cityCoordinates is the bundled gazetteer used at registration when a user
// gives a birth place instead of raw coordinates.
type cityEntry struct {
	Lat      float64
	Lon      float64
	Timezone string
}

var cityCoordinates = map[string]cityEntry{
	"mumbai":     {19.0760, 72.8777, "Asia/Kolkata"},
	"delhi":      {28.7041, 77.1025, "Asia/Kolkata"},
	"bangalore":  {12.9716, 77.5946, "Asia/Kolkata"},
	"bengaluru":  {12.9716, 77.5946, "Asia/Kolkata"},
	"hyderabad":  {17.3850, 78.4867, "Asia/Kolkata"},
	"chennai":    {13.0827, 80.2707, "Asia/Kolkata"},
	"kolkata":    {22.5726, 88.3639, "Asia/Kolkata"},
	"pune":       {18.5204, 73.8567, "Asia/Kolkata"},
	"ahmedabad":  {23.0225, 72.5714, "Asia/Kolkata"},
	"jaipur":     {26.9124, 75.7873, "Asia/Kolkata"},
	"lucknow":    {26.8467, 80.9462, "Asia/Kolkata"},
	"kanpur":     {26.4499, 80.3319, "Asia/Kolkata"},
	"nagpur":     {21.1458, 79.0882, "Asia/Kolkata"},
	"indore":     {22.7196, 75.8577, "Asia/Kolkata"},
	"patna":      {25.5941, 85.1376, "Asia/Kolkata"},
	"bhopal":     {23.2599, 77.4126, "Asia/Kolkata"},
	"varanasi":   {25.3176, 82.9739, "Asia/Kolkata"},
	"amritsar":   {31.6340, 74.8723, "Asia/Kolkata"},
	"chandigarh": {30.7333, 76.7794, "Asia/Kolkata"},
	"surat":      {21.1702, 72.8311, "Asia/Kolkata"},
	"kochi":      {9.9312, 76.2673, "Asia/Kolkata"},
	"katmandu":   {27.7172, 85.3240, "Asia/Kathmandu"},
	"kathmandu":  {27.7172, 85.3240, "Asia/Kathmandu"},
	"dhaka":      {23.8103, 90.4125, "Asia/Dhaka"},
	"colombo":    {6.9271, 79.8612, "Asia/Colombo"},
	"karachi":    {24.8607, 67.0011, "Asia/Karachi"},
	"london":     {51.5074, -0.1278, "Europe/London"},
	"new york":   {40.7128, -74.0060, "America/New_York"},
	"toronto":    {43.6532, -79.3832, "America/Toronto"},
	"dubai":      {25.2048, 55.2708, "Asia/Dubai"},
	"singapore":  {1.3521, 103.8198, "Asia/Singapore"},
	"sydney":     {-33.8688, 151.2093, "Australia/Sydney"},
}

// LookupCity resolves a birth place name to coordinates and a timezone.
func LookupCity(name string) (cityEntry, bool) {
	entry, ok := cityCoordinates[strings.ToLower(strings.TrimSpace(name))]
	return entry, ok
}
