package game

import "time"

const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Game is the stored state of one game. Only the current board and the
// board before the last move are kept; the ko point is derived from them.
type Game struct {
	GameID    string    `json:"game_id" bson:"game_id"`
	BoardSize int       `json:"board_size" bson:"board_size"`
	Board     string    `json:"board" bson:"board"`
	PrevBoard string    `json:"prev_board,omitempty" bson:"prev_board,omitempty"`
	Status    string    `json:"status" bson:"status"`
	Score     *int      `json:"score,omitempty" bson:"score,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Move is a stone placement; Coordinates is a GTP vertex such as "D4".
type Move struct {
	Color       string `json:"color"`
	Coordinates string `json:"coordinates"`
}

type CreateGameRequest struct {
	BoardSize int `json:"board_size"`
}

// GameState is what clients see of a game.
type GameState struct {
	GameID    string   `json:"game_id"`
	BoardSize int      `json:"board_size"`
	Rows      []string `json:"rows"`
	Ko        string   `json:"ko,omitempty"`
	Status    string   `json:"status"`
	Score     *int     `json:"score,omitempty"`
	LastMove  *Move    `json:"last_move,omitempty"`
}

type ScoreResponse struct {
	GameID string `json:"game_id,omitempty"`
	Score  int    `json:"score"`
	Komi   int    `json:"komi"`
}

type LibertiesResponse struct {
	GameID    string  `json:"game_id,omitempty"`
	Liberties [][]int `json:"liberties"`
}

type LegalMovesResponse struct {
	GameID string   `json:"game_id,omitempty"`
	Legal  [][]bool `json:"legal"`
}

// AnalyzeRequest describes a position that is not stored anywhere.
type AnalyzeRequest struct {
	BoardSize int      `json:"board_size"`
	Rows      []string `json:"rows"`
	Ko        string   `json:"ko,omitempty"`
}

type AnalyzeResponse struct {
	Score     int      `json:"score"`
	Territory []string `json:"territory"`
	Liberties [][]int  `json:"liberties"`
	Legal     [][]bool `json:"legal"`
}

type KoRequest struct {
	BoardSize int      `json:"board_size"`
	Before    []string `json:"before"`
	After     []string `json:"after"`
}

type KoResponse struct {
	Ko string `json:"ko,omitempty"`
}
