package statsfeed

import "encoding/json"

// Wire schema for the live game feed. Only the fields the engine consumes
// are modeled; everything else in the payload is ignored.

type feedResponse struct {
	GamePK   int      `json:"gamePk"`
	GameData gameData `json:"gameData"`
	LiveData liveData `json:"liveData"`
}

type gameData struct {
	Status struct {
		AbstractGameState string `json:"abstractGameState"` // "Live", "Final", ...
	} `json:"status"`
}

type liveData struct {
	Plays struct {
		AllPlays []play `json:"allPlays"`
	} `json:"plays"`
	Linescore struct {
		Teams struct {
			Home teamScore `json:"home"`
			Away teamScore `json:"away"`
		} `json:"teams"`
	} `json:"linescore"`
}

type teamScore struct {
	Runs int `json:"runs"`
}

type play struct {
	About struct {
		AtBatIndex int    `json:"atBatIndex"`
		Inning     int    `json:"inning"`
		HalfInning string `json:"halfInning"` // "top" / "bottom"
		IsComplete bool   `json:"isComplete"`
	} `json:"about"`
	Result struct {
		EventType string `json:"eventType"` // "strikeout", "single", ...
	} `json:"result"`
	Matchup struct {
		Pitcher   idRef `json:"pitcher"`
		Batter    idRef `json:"batter"`
		PitchHand struct {
			Code string `json:"code"`
		} `json:"pitchHand"`
		BatSide struct {
			Code string `json:"code"`
		} `json:"batSide"`
		// Present only when a runner occupies the base.
		PostOnFirst  *idRef `json:"postOnFirst"`
		PostOnSecond *idRef `json:"postOnSecond"`
		PostOnThird  *idRef `json:"postOnThird"`
	} `json:"matchup"`
	PlayEvents []playEvent `json:"playEvents"`
}

type idRef struct {
	ID int `json:"id"`
}

type playEvent struct {
	IsPitch bool `json:"isPitch"`
	Details struct {
		Type struct {
			Code string `json:"code"`
		} `json:"type"`
		Description string `json:"description"`
		IsInPlay    bool   `json:"isInPlay"`
	} `json:"details"`
	Count struct {
		Balls   int `json:"balls"`
		Strikes int `json:"strikes"`
	} `json:"count"`
	PitchNumber int        `json:"pitchNumber"`
	PitchData   *pitchData `json:"pitchData"`
	HitData     *hitData   `json:"hitData"`
}

type pitchData struct {
	StartSpeed  *float64 `json:"startSpeed"`
	Coordinates struct {
		// Primary plate-crossing coordinates.
		PX *float64 `json:"pX"`
		PZ *float64 `json:"pZ"`
		// Legacy pixel-derived coordinates.
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"coordinates"`
	Breaks *struct {
		HorzBreak   *float64 `json:"breakHorizontal"`
		VertBreak   *float64 `json:"breakVerticalInduced"`
		BreakAngle  *float64 `json:"breakAngle"`
		BreakLength *float64 `json:"breakLength"`
	} `json:"breaks"`
	StrikeZoneTop    *float64 `json:"strikeZoneTop"`
	StrikeZoneBottom *float64 `json:"strikeZoneBottom"`
}

type hitData struct {
	LaunchSpeed *float64 `json:"launchSpeed"`
}

// decodeFeed unmarshals a raw feed body.
func decodeFeed(data []byte) (*feedResponse, error) {
	var fr feedResponse
	if err := json.Unmarshal(data, &fr); err != nil {
		return nil, err
	}
	return &fr, nil
}
