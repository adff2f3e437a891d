package model

const (
	PlatformSleeper      = "sleeper"
	PlatformSportsDataIO = "sportsdataio"
)
