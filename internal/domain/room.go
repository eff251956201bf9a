package domain

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	CodeLength = 6

	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	alphabetLen = big.NewInt(int64(len(codeAlphabet)))

	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrNameRequired      = errors.New("name is required")
	ErrRoomCodeRequired  = errors.New("room code is required")
)

// Room is the live state of one chat room. Members maps display names to a
// presence flag; only key existence matters. Messages is append-only in
// arrival order. A room is never deleted once created; archiving snapshots
// the log without touching it.
type Room struct {
	Code     string          `json:"code"`
	Members  map[string]bool `json:"members"`
	Messages []Message       `json:"messages"`
}

// RoomStore is the shared per-room state, keyed by room code. Each call is
// atomic with respect to a single field of a single room. UpdateMembers and
// AppendMessage serialize the whole read-modify-write for their field so that
// two concurrent mutations cannot silently overwrite each other.
type RoomStore interface {
	// CreateRoom claims the code and initializes empty members and messages.
	// Returns ErrRoomAlreadyExists when the code is taken.
	CreateRoom(ctx context.Context, code string) error

	Exists(ctx context.Context, code string) (bool, error)

	// Members and Messages return the current field value, or ErrRoomNotFound
	// when the room was never created.
	Members(ctx context.Context, code string) (map[string]bool, error)
	Messages(ctx context.Context, code string) ([]Message, error)

	// UpdateMembers applies fn to the current member set and writes the
	// result back, returning the post-update set.
	UpdateMembers(ctx context.Context, code string, fn func(members map[string]bool)) (map[string]bool, error)

	// AppendMessage appends msg to the room's message log.
	AppendMessage(ctx context.Context, code string, msg Message) error
}

// NewRoomCode draws a fixed-length code over the uppercase alphabet.
// Uniqueness is the caller's problem: sample, check against the store, retry.
func NewRoomCode() (string, error) {
	var sb strings.Builder
	sb.Grow(CodeLength)

	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}

	return sb.String(), nil
}
