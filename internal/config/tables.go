package config

import "time"

// DailyThemes maps each day of the week to the theme that biases verse
// selection for that day.
var DailyThemes = map[time.Weekday]string{
	time.Monday:    "hope",
	time.Tuesday:   "wisdom",
	time.Wednesday: "perseverance",
	time.Thursday:  "faith",
	time.Friday:    "love",
	time.Saturday:  "peace",
	time.Sunday:    "gratitude",
}

// ThemeForDay returns the theme for the given day, defaulting to wisdom.
func ThemeForDay(day time.Weekday) string {
	if theme, ok := DailyThemes[day]; ok {
		return theme
	}
	return "wisdom"
}

// TargetAccount is an account the interactions flow reads and replies to.
type TargetAccount struct {
	Handle string
	UserID string
}

// TargetAccounts lists the crypto and finance accounts the bot interacts
// with, in fixed priority order.
var TargetAccounts = []TargetAccount{
	{Handle: "VitalikButerin", UserID: "295218901"},
	{Handle: "saylor", UserID: "244647486"},
	{Handle: "cz_binance", UserID: "98945122"},
	{Handle: "elonmusk", UserID: "44196397"},
	{Handle: "naval", UserID: "17874544"},
	{Handle: "MarketWatch", UserID: "624413"},
	{Handle: "WSJ", UserID: "3108351"},
	{Handle: "bloomberg", UserID: "34713362"},
	{Handle: "Reuters", UserID: "1652541"},
	{Handle: "FT", UserID: "18949452"},
}
