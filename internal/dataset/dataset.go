// Package dataset loads the static posts, companies and per-post comments
// served by the generation service.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/pkg/logging"
)

const (
	postsFile     = "post.json"
	companiesFile = "company.json"
	commentsDir   = "comments"
	commentSuffix = "_comments"
)

// Dataset is the immutable in-memory corpus
type Dataset struct {
	Posts     []models.Post
	Companies []models.Company

	comments  map[string][]models.CommentRecord
	postOrder []string
	postIndex map[string]int
	compIndex map[string]int
}

// New builds a dataset from already decoded values. commentOrder fixes
// the iteration order of the per-post comment collections; posts missing
// from it are appended in sorted order.
func New(posts []models.Post, companies []models.Company, comments map[string][]models.CommentRecord) *Dataset {
	d := &Dataset{
		Posts:     posts,
		Companies: companies,
		comments:  make(map[string][]models.CommentRecord, len(comments)),
		postIndex: make(map[string]int, len(posts)),
		compIndex: make(map[string]int, len(companies)),
	}
	for i, p := range posts {
		if _, ok := d.postIndex[p.PostID]; !ok {
			d.postIndex[p.PostID] = i
		}
	}
	for i, c := range companies {
		id := c.CompanyID.String()
		if _, ok := d.compIndex[id]; !ok {
			d.compIndex[id] = i
		}
	}
	for id, records := range comments {
		d.comments[id] = records
		d.postOrder = append(d.postOrder, id)
	}
	sort.Strings(d.postOrder)
	return d
}

// Load reads the corpus from dir. Missing files yield empty collections;
// malformed files are an error.
func Load(dir string) (*Dataset, error) {
	logger := logging.WithComponent("dataset")

	var posts []models.Post
	if err := readJSON(filepath.Join(dir, postsFile), &posts); err != nil {
		return nil, err
	}
	var companies []models.Company
	if err := readJSON(filepath.Join(dir, companiesFile), &companies); err != nil {
		return nil, err
	}

	comments := make(map[string][]models.CommentRecord)
	paths, err := filepath.Glob(filepath.Join(dir, commentsDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list comment files: %w", err)
	}
	for _, path := range paths {
		postID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		postID = strings.Replace(postID, commentSuffix, "", 1)

		var records []models.CommentRecord
		if err := readJSON(path, &records); err != nil {
			return nil, err
		}
		for i := range records {
			if records[i].PostID == "" {
				records[i].PostID = postID
			}
		}
		comments[postID] = records
	}

	d := New(posts, companies, comments)
	logger.Info("Dataset loaded",
		zap.String("dir", dir),
		zap.Int("posts", len(posts)),
		zap.Int("companies", len(companies)),
		zap.Int("comment_files", len(comments)))
	return d, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.GetLogger().Warn("Dataset file missing", zap.String("path", path))
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// Post looks up a post by id
func (d *Dataset) Post(id string) (models.Post, bool) {
	i, ok := d.postIndex[id]
	if !ok {
		return models.Post{}, false
	}
	return d.Posts[i], true
}

// Company looks up a company by id
func (d *Dataset) Company(id string) (models.Company, bool) {
	i, ok := d.compIndex[id]
	if !ok {
		return models.Company{}, false
	}
	return d.Companies[i], true
}

// Comments returns the raw records of a post in file order
func (d *Dataset) Comments(postID string) []models.CommentRecord {
	return d.comments[postID]
}

// CommentPosts returns the ids of posts with a comment collection, in a
// stable order
func (d *Dataset) CommentPosts() []string {
	return d.postOrder
}
