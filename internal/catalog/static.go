package catalog

import "github.com/iamorlov/cityguesser/internal/game"

// MajorCities is the static selection pool. It backs the no-LLM
// deployment mode and the fallback path when the external call fails.
// Static picks carry a single name, so Name and NameEn coincide.
var MajorCities = []game.City{
	{Name: "Tokyo", NameEn: "Tokyo", Lat: 35.6762, Lng: 139.6503},
	{Name: "New York", NameEn: "New York", Lat: 40.7128, Lng: -74.0060},
	{Name: "London", NameEn: "London", Lat: 51.5074, Lng: -0.1278},
	{Name: "Paris", NameEn: "Paris", Lat: 48.8566, Lng: 2.3522},
	{Name: "Sydney", NameEn: "Sydney", Lat: -33.8688, Lng: 151.2093},
	{Name: "Rio de Janeiro", NameEn: "Rio de Janeiro", Lat: -22.9068, Lng: -43.1729},
	{Name: "Cairo", NameEn: "Cairo", Lat: 30.0444, Lng: 31.2357},
	{Name: "Mumbai", NameEn: "Mumbai", Lat: 19.0760, Lng: 72.8777},
	{Name: "Beijing", NameEn: "Beijing", Lat: 39.9042, Lng: 116.4074},
	{Name: "Cape Town", NameEn: "Cape Town", Lat: -33.9249, Lng: 18.4241},
	{Name: "Moscow", NameEn: "Moscow", Lat: 55.7558, Lng: 37.6173},
	{Name: "Mexico City", NameEn: "Mexico City", Lat: 19.4326, Lng: -99.1332},
	{Name: "Berlin", NameEn: "Berlin", Lat: 52.5200, Lng: 13.4050},
	{Name: "Bangkok", NameEn: "Bangkok", Lat: 13.7563, Lng: 100.5018},
	{Name: "Rome", NameEn: "Rome", Lat: 41.9028, Lng: 12.4964},
	{Name: "Seoul", NameEn: "Seoul", Lat: 37.5665, Lng: 126.9780},
	{Name: "Toronto", NameEn: "Toronto", Lat: 43.6532, Lng: -79.3832},
	{Name: "Singapore", NameEn: "Singapore", Lat: 1.3521, Lng: 103.8198},
	{Name: "Istanbul", NameEn: "Istanbul", Lat: 41.0082, Lng: 28.9784},
	{Name: "Dubai", NameEn: "Dubai", Lat: 25.2048, Lng: 55.2708},
}
