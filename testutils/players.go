package testutils

// Player IDs present in the sleeperdata fixtures.
const (
	IDSleeperElliott  = "3164"
	IDSleeperConner   = "4035"
	IDSleeperBijan    = "9509"
	IDSleeperAllgeier = "8205"
	IDSleeperHurts    = "6904"
	IDSleeperMahomes  = "4046"
	IDSleeperAllen    = "4984"
	IDSleeperLockett  = "2374"
	IDSleeperSinnott  = "11596"
	IDSleeperEagles   = "PHI"
	IDSleeperUnnamed  = "9999"
)

// Player IDs present in the sportsdata fixtures.
const (
	IDSportsDataBarkley   = "19763"
	IDSportsDataBijan     = "23189"
	IDSportsDataHenry     = "17959"
	IDSportsDataKamara    = "18878"
	IDSportsDataHall      = "23180"
	IDSportsDataTaylor    = "21682"
	IDSportsDataKyren     = "22564"
	IDSportsDataHurts     = "21831"
	IDSportsDataMahomes   = "18877"
	IDSportsDataLockett   = "16830"
	IDSportsDataMcCaffrey = "18872"
)
