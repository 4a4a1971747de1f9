package riot

// AccountResponse es la respuesta de account-v1 by-riot-id
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Match representa una partida completa de match-v5
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameMode         string        `json:"gameMode"`
	GameDuration     int           `json:"gameDuration"` // segundos
	GameEndTimestamp int64         `json:"gameEndTimestamp"`
	QueueID          int           `json:"queueId"`
	Participants     []Participant `json:"participants"`
}

// Participant es la fila de un jugador dentro de una partida
type Participant struct {
	PUUID          string `json:"puuid"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
	ChampionName   string `json:"championName"`
	Win            bool   `json:"win"`
	Kills          int    `json:"kills"`
	Deaths         int    `json:"deaths"`
	Assists        int    `json:"assists"`
}

// Participant busca la fila del jugador con ese puuid.
func (m *Match) Participant(puuid string) (*Participant, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			return &m.Info.Participants[i], true
		}
	}
	return nil, false
}
