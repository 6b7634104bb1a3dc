package domain

import "time"

// GameSession is one completed playthrough. Sessions are immutable once
// recorded.
type GameSession struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Score       int       `json:"score"`
	WaveReached int       `json:"waveReached"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RankedEntry is a single leaderboard row.
type RankedEntry struct {
	Rank        int       `json:"rank"`
	Username    string    `json:"username"`
	Score       int       `json:"score"`
	WaveReached int       `json:"waveReached"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserStats aggregates every session a user owns.
type UserStats struct {
	TotalGames    int `json:"totalGames"`
	HighScore     int `json:"highScore"`
	BestWave      int `json:"bestWave"`
	TotalPlayTime int `json:"totalPlayTime"`
}

// ComputeStats folds sessions into a UserStats. HighScore and BestWave are
// maximised independently and may come from different sessions.
func ComputeStats(sessions []GameSession) UserStats {
	var st UserStats
	for _, s := range sessions {
		st.TotalGames++
		st.TotalPlayTime += s.Duration
		if s.Score > st.HighScore {
			st.HighScore = s.Score
		}
		if s.WaveReached > st.BestWave {
			st.BestWave = s.WaveReached
		}
	}
	return st
}

// Ranks assigns 1-based ranks in slice order.
func Ranks(entries []RankedEntry) []RankedEntry {
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
