package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Post represents a policy draft open for consultation
type Post struct {
	PostID    string `json:"postId"`
	Title     string `json:"title"`
	DraftText string `json:"draft_text"`
}

// NewPost creates a post, requiring an id
func NewPost(id, title, draftText string) (Post, error) {
	if strings.TrimSpace(id) == "" {
		return Post{}, fmt.Errorf("post id is required")
	}
	return Post{PostID: id, Title: title, DraftText: draftText}, nil
}

// Company represents a stakeholder that comments on posts
type Company struct {
	CompanyID   FlexString `json:"companyId"`
	CompanyName string     `json:"companyName"`
	Category    Category   `json:"category"`
	State       string     `json:"state"`
}

// NewCompany creates a company, requiring id and name and defaulting
// category to General and state to Unknown
func NewCompany(id, name string, category Category, state string) (Company, error) {
	if strings.TrimSpace(id) == "" {
		return Company{}, fmt.Errorf("company id is required")
	}
	if strings.TrimSpace(name) == "" {
		return Company{}, fmt.Errorf("company name is required")
	}
	c := Company{CompanyID: FlexString(id), CompanyName: name, Category: category, State: state}
	c.applyDefaults()
	return c, nil
}

func (c *Company) applyDefaults() {
	if c.Category == "" {
		c.Category = CategoryGeneral
	}
	if c.State == "" {
		c.State = "Unknown"
	}
}

// UnmarshalJSON decodes a company and applies defaults for missing optional fields
func (c *Company) UnmarshalJSON(data []byte) error {
	type raw Company
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*c = Company(r)
	c.applyDefaults()
	return nil
}

// AnonymousCompany is returned when no company is available for weighting
func AnonymousCompany() Company {
	return Company{
		CompanyID:   "0",
		CompanyName: "Anonymous Company",
		Category:    CategoryGeneral,
		State:       "Unknown",
	}
}

// CommentRecord is one stored comment for a post
type CommentRecord struct {
	PostID      string `json:"postId"`
	CommentText string `json:"commentText"`
}

// FlexString accepts both JSON strings and numbers. Company ids appear as
// either in exported datasets.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("company id must be a string or number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the raw value
func (f FlexString) String() string {
	return string(f)
}
