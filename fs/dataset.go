// Package fs provides file-based storage for datasets, documents and
// cached images.
package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/newsarchive"
)

// LoadArticles reads a dataset file. A missing file returns ENOTFOUND.
func LoadArticles(path string) ([]*newsarchive.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newsarchive.Errorf(newsarchive.ENOTFOUND, "dataset %s not found", path)
		}
		return nil, err
	}

	var articles []*newsarchive.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, newsarchive.Errorf(newsarchive.EINVALID, "invalid dataset %s: %v", path, err)
	}
	for _, a := range articles {
		if a.Type == "" {
			a.Type = newsarchive.ArticleTypePost
		}
	}
	return articles, nil
}

// SaveArticles writes a dataset file.
func SaveArticles(path string, articles []*newsarchive.Article) error {
	if articles == nil {
		articles = []*newsarchive.Article{}
	}
	return SaveJSON(path, articles)
}

// SaveJSON writes v as indented JSON with non-ASCII text left unescaped.
// The file is written to a temporary sibling and renamed into place, so
// readers never observe a partial file.
func SaveJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
