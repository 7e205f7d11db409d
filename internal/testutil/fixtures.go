package testutil

import (
	"encoding/json"
	"testing"

	"github.com/mobil-koeln/railsearch/internal/models"
)

// StationsJSON is a small station dataset in the remote dataset shape.
const StationsJSON = `[
	{
		"name": "New Delhi",
		"code": "NDLS",
		"utterances": ["new delhi", "nai dilli"],
		"name_hi": "नई दिल्ली",
		"name_pa": "ਨਵੀਂ ਦਿੱਲੀ",
		"district": "New Delhi",
		"state": "Delhi",
		"trainCount": "389",
		"latitude": 28.6428,
		"longitude": 77.2191,
		"address": "Bhavbhuti Marg, Ajmeri Gate, New Delhi"
	},
	{
		"name": "Mumbai Central",
		"code": "BCT",
		"name_hi": "मुंबई सेंट्रल",
		"name_mr": "मुंबई सेंट्रल",
		"name_gu": "મુંબઈ સેન્ટ્રલ",
		"district": "Mumbai",
		"state": "Maharashtra",
		"trainCount": "121",
		"latitude": 18.9690,
		"longitude": 72.8194
	},
	{
		"name": "Ghaziabad",
		"code": "GZB",
		"name_hi": "गाज़ियाबाद",
		"district": "Ghaziabad",
		"state": "Uttar Pradesh",
		"trainCount": "242",
		"latitude": 28.6505,
		"longitude": 77.4427
	},
	{
		"name": "Howrah Jn",
		"code": "HWH",
		"name_hi": "हावड़ा जंक्शन",
		"name_bn": "হাওড়া জংশন",
		"district": "Howrah",
		"state": "West Bengal",
		"trainCount": "0",
		"latitude": 22.5838,
		"longitude": 88.3426
	},
	{
		"name": "MGR Chennai Central",
		"code": "MAS",
		"name_ta": "சென்னை சென்ட்ரல்",
		"district": "Chennai",
		"state": "Tamil Nadu",
		"trainCount": "160",
		"latitude": 13.0827,
		"longitude": 80.2752
	},
	{
		"name": "KSR Bengaluru",
		"code": "SBC",
		"name_kn": "ಕೆಎಸ್ಆರ್ ಬೆಂಗಳೂರು",
		"district": "Bengaluru Urban",
		"state": "Karnataka",
		"trainCount": "98"
	},
	{
		"name": "Ahmedabad Jn",
		"code": "ADI",
		"name_gu": "અમદાવાદ જંક્શન",
		"district": "Ahmedabad",
		"state": "Gujarat",
		"trainCount": "176",
		"latitude": 23.0258,
		"longitude": 72.6010
	},
	{
		"name": "Secunderabad Jn",
		"code": "SC",
		"name_te": "సికింద్రాబాద్ జంక్షన్",
		"district": "Hyderabad",
		"state": "Telangana",
		"trainCount": "210"
	},
	{
		"name": "Ernakulam Jn",
		"code": "ERS",
		"name_ml": "എറണാകുളം ജംഗ്ഷൻ",
		"district": "Ernakulam",
		"state": "Kerala",
		"trainCount": "94"
	},
	{
		"name": "Amritsar Jn",
		"code": "ASR",
		"name_pa": "ਅੰਮ੍ਰਿਤਸਰ ਜੰਕਸ਼ਨ",
		"district": "Amritsar",
		"state": "Punjab",
		"trainCount": "64"
	},
	{
		"name": "Bhubaneswar",
		"code": "BBS",
		"name_or": "ଭୁବନେଶ୍ୱର",
		"district": "Khordha",
		"state": "Odisha",
		"trainCount": "88"
	},
	{
		"name": "Guwahati",
		"code": "GHY",
		"name_as": "গুৱাহাটী",
		"name_bn": "গুয়াহাটি",
		"district": "Kamrup Metropolitan",
		"state": "Assam",
		"trainCount": "72"
	},
	{
		"name": "Hazrat Nizamuddin",
		"code": "NZM",
		"district": "South Delhi",
		"state": "Delhi",
		"trainCount": "0"
	},
	{
		"name": "Pune Jn",
		"code": "PUNE",
		"name_mr": "पुणे जंक्शन",
		"district": "Pune",
		"state": "Maharashtra",
		"trainCount": "150",
		"latitude": 18.5289,
		"longitude": 73.8744
	}
]`

// ScenarioJSON is the two-station dataset used by ranking scenarios.
const ScenarioJSON = `[
	{"name": "New Delhi", "code": "NDLS", "district": "New Delhi", "state": "Delhi"},
	{"name": "Mumbai Central", "code": "BCT", "district": "Mumbai", "state": "Maharashtra"}
]`

// Stations parses StationsJSON.
func Stations(t testing.TB) []models.Station {
	t.Helper()
	return mustParse(t, StationsJSON)
}

// ScenarioStations returns the stations in ScenarioJSON.
func ScenarioStations() []models.Station {
	var stations []models.Station
	if err := json.Unmarshal([]byte(ScenarioJSON), &stations); err != nil {
		panic(err)
	}
	return stations
}

// Station builds a station with only the required fields set.
func Station(code, name, district, state string) models.Station {
	return models.Station{Name: name, Code: code, District: district, State: state, TrainCount: "0"}
}

func mustParse(t testing.TB, data string) []models.Station {
	t.Helper()
	var stations []models.Station
	if err := json.Unmarshal([]byte(data), &stations); err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return stations
}
