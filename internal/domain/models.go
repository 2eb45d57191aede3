// Package domain defines the persistence models for questions and answers.
// These types are mapped with GORM, decoded from request bodies, and form the
// core data layer of the Q&A service.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// QuestionID identifies a Question. In JSON it is emitted as a number but
// accepted both as a number and as a numeric string ("1").
type QuestionID int64

// AnswerID identifies an Answer. Same JSON rules as QuestionID.
type AnswerID int64

// UnmarshalJSON accepts 7 or "7".
func (id *QuestionID) UnmarshalJSON(b []byte) error {
	n, err := parseJSONID(b)
	if err != nil {
		return fmt.Errorf("question id: %w", err)
	}
	*id = QuestionID(n)
	return nil
}

// UnmarshalJSON accepts 7 or "7".
func (id *AnswerID) UnmarshalJSON(b []byte) error {
	n, err := parseJSONID(b)
	if err != nil {
		return fmt.Errorf("answer id: %w", err)
	}
	*id = AnswerID(n)
	return nil
}

// String returns the decimal form of the id.
func (id QuestionID) String() string { return strconv.FormatInt(int64(id), 10) }

// String returns the decimal form of the id.
func (id AnswerID) String() string { return strconv.FormatInt(int64(id), 10) }

func parseJSONID(b []byte) (int64, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return 0, nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return strconv.ParseInt(string(b), 10, 64)
}

// Question is a user-submitted question. Updates replace the full record.
//
// Fields:
//   - ID: auto-incremented primary key; also defines the listing order.
//   - Title / Content: free text.
//   - Tags: optional ordered labels, stored as a JSON column.
type Question struct {
	ID      QuestionID `json:"id"      gorm:"primaryKey;autoIncrement"`
	Title   string     `json:"title"   gorm:"type:text;not null"`
	Content string     `json:"content" gorm:"type:text;not null"`
	Tags    []string   `json:"tags"    gorm:"serializer:json"`
}

// TableName returns the database table name for Question.
func (Question) TableName() string { return "questions" }

// Normalize trims and NFC-normalizes the text fields in place.
func (q *Question) Normalize() {
	q.Title = normalizeText(q.Title)
	q.Content = normalizeText(q.Content)
}

// NewQuestion is the creation payload for a Question. The id is always
// assigned by the store. Title and content must be present in the JSON body
// but may be empty strings.
type NewQuestion struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UnmarshalJSON rejects bodies that omit title or content.
func (n *NewQuestion) UnmarshalJSON(b []byte) error {
	var raw struct {
		Title   *string  `json:"title"`
		Content *string  `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.Title == nil:
		return errMissingField("title")
	case raw.Content == nil:
		return errMissingField("content")
	}
	*n = NewQuestion{Title: *raw.Title, Content: *raw.Content, Tags: raw.Tags}
	return nil
}

func errMissingField(name string) error {
	return fmt.Errorf("missing field `%s`", name)
}

// Normalize trims and NFC-normalizes the text fields in place.
func (n *NewQuestion) Normalize() {
	n.Title = normalizeText(n.Title)
	n.Content = normalizeText(n.Content)
}

// Answer is a reply to a Question. QuestionID is a weak reference: it is not
// checked against existing questions and survives their deletion.
type Answer struct {
	ID         AnswerID   `json:"id"          gorm:"primaryKey;autoIncrement"`
	Content    string     `json:"content"     gorm:"type:text;not null"`
	QuestionID QuestionID `json:"question_id" gorm:"not null;index:idx_answers_question"`
}

// TableName returns the database table name for Answer.
func (Answer) TableName() string { return "answers" }

// NewAnswer is the creation payload for an Answer, decoded from a
// form-encoded body.
type NewAnswer struct {
	Content    string     `form:"content"     json:"content"     binding:"required"`
	QuestionID QuestionID `form:"question_id" json:"question_id" binding:"required"`
}

// Normalize trims and NFC-normalizes the content in place.
func (n *NewAnswer) Normalize() {
	n.Content = normalizeText(n.Content)
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
