// Package owm implements location searches against the OpenWeatherMap "find"
// API. A search is free text (a city name, optionally with a country code) and
// a successful search returns the matching places with their country and
// coordinates, in the order the API ranked them.
package owm
