package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"ripple/internal/models"
)

// Snapshot is the single serialized document holding the full store state.
// Field names are the document's wire names; the loader accepts the legacy
// names used by earlier releases (see Decode).
type Snapshot struct {
	Users               []models.User         `json:"users"`
	Posts               []models.Post         `json:"posts"`
	Likes               []models.Like         `json:"likes"`
	Follows             []models.Follow       `json:"follows"`
	Comments            []models.Comment      `json:"comments"`
	ManualVerifications []string              `json:"manualVerifications"`
	SyntheticFollowers  map[string]int        `json:"syntheticFollowers"`
	Owners              []string              `json:"owners"`
	Conversations       []models.Conversation `json:"conversations"`
	Messages            []models.Message      `json:"messages"`
}

// normalize replaces nil collections with empty ones so the document always
// carries every top-level field.
func (s *Snapshot) normalize() {
	if s.Users == nil {
		s.Users = []models.User{}
	}
	if s.Posts == nil {
		s.Posts = []models.Post{}
	}
	if s.Likes == nil {
		s.Likes = []models.Like{}
	}
	if s.Follows == nil {
		s.Follows = []models.Follow{}
	}
	if s.Comments == nil {
		s.Comments = []models.Comment{}
	}
	if s.ManualVerifications == nil {
		s.ManualVerifications = []string{}
	}
	if s.SyntheticFollowers == nil {
		s.SyntheticFollowers = map[string]int{}
	}
	if s.Owners == nil {
		s.Owners = []string{}
	}
	if s.Conversations == nil {
		s.Conversations = []models.Conversation{}
	}
	if s.Messages == nil {
		s.Messages = []models.Message{}
	}
}

// rawLike tolerates the legacy post-reference field names used by earlier
// document versions.
type rawLike struct {
	UserID string `json:"userId"`
	PostID string `json:"postId"`
	RtID   string `json:"rtId"`
	ZeetID string `json:"zeetId"`
}

func (r rawLike) postID() string {
	switch {
	case r.PostID != "":
		return r.PostID
	case r.RtID != "":
		return r.RtID
	default:
		return r.ZeetID
	}
}

type rawComment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	PostID    string    `json:"postId"`
	RtID      string    `json:"rtId"`
	ZeetID    string    `json:"zeetId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r rawComment) postID() string {
	switch {
	case r.PostID != "":
		return r.PostID
	case r.RtID != "":
		return r.RtID
	default:
		return r.ZeetID
	}
}

// rawSnapshot is the permissive decoding target. It accepts the current
// schema plus the legacy collection names "rts" and "zeets" for posts and
// "generatedFollowers" for the synthetic-follower counters.
type rawSnapshot struct {
	Users               []models.User         `json:"users"`
	Posts               []models.Post         `json:"posts"`
	Rts                 []models.Post         `json:"rts"`
	Zeets               []models.Post         `json:"zeets"`
	Likes               []rawLike             `json:"likes"`
	Follows             []models.Follow       `json:"follows"`
	Comments            []rawComment          `json:"comments"`
	ManualVerifications []string              `json:"manualVerifications"`
	SyntheticFollowers  map[string]int        `json:"syntheticFollowers"`
	GeneratedFollowers  map[string]int        `json:"generatedFollowers"`
	Owners              []string              `json:"owners"`
	Conversations       []models.Conversation `json:"conversations"`
	Messages            []models.Message      `json:"messages"`
}

// Decode parses a snapshot document, migrating legacy field names into the
// current schema. Any absent top-level field defaults to an empty
// collection.
func Decode(data []byte) (*Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	doc := &Snapshot{
		Users:               raw.Users,
		Posts:               raw.Posts,
		Follows:             raw.Follows,
		ManualVerifications: raw.ManualVerifications,
		SyntheticFollowers:  raw.SyntheticFollowers,
		Owners:              raw.Owners,
		Conversations:       raw.Conversations,
		Messages:            raw.Messages,
	}
	if doc.Posts == nil {
		if raw.Rts != nil {
			doc.Posts = raw.Rts
		} else if raw.Zeets != nil {
			doc.Posts = raw.Zeets
		}
	}
	if doc.SyntheticFollowers == nil {
		doc.SyntheticFollowers = raw.GeneratedFollowers
	}
	for i := range doc.Posts {
		if doc.Posts[i].State == "" {
			doc.Posts[i].State = models.PostStateActive
		}
	}
	for _, l := range raw.Likes {
		doc.Likes = append(doc.Likes, models.Like{UserID: l.UserID, PostID: l.postID()})
	}
	for _, c := range raw.Comments {
		doc.Comments = append(doc.Comments, models.Comment{
			ID:        c.ID,
			AuthorID:  c.AuthorID,
			PostID:    c.postID(),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}

	doc.normalize()
	return doc, nil
}

// Encode serializes the snapshot document.
func (s *Snapshot) Encode() ([]byte, error) {
	s.normalize()
	return json.MarshalIndent(s, "", "  ")
}

// FileWriter persists snapshots to a file on disk. Writes go through a
// temporary file and a rename so a crash never leaves a torn document.
type FileWriter struct {
	Path string
}

// NewFileWriter returns a FileWriter for the given path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{Path: path}
}

// Write serializes the document to the configured path.
func (w *FileWriter) Write(doc *Snapshot) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), w.Path)
}

// LoadFile reads the snapshot document at path. A missing file yields an
// empty document, not an error.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &Snapshot{}
			doc.normalize()
			return doc, nil
		}
		return nil, err
	}
	return Decode(data)
}

// Open loads the snapshot at path and returns a Store that persists back to
// the same file.
func Open(path string) (*Store, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromSnapshot(doc, NewFileWriter(path)), nil
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
