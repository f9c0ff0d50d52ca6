package controllers

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yatube/yatube/models"
	"github.com/yatube/yatube/utils"
)

// PostForm carries the raw field values of a post create/edit request.
// The same form serves both modes: Validate checks the fields, Apply binds
// them onto a fresh or existing post.
type PostForm struct {
	Text    string `json:"text"`
	GroupID *uint  `json:"group"`
	Image   string `json:"image"`
}

// Validate sanitizes the fields and returns field-level error messages.
// An empty map means the form is valid.
func (f *PostForm) Validate(db *gorm.DB) map[string]string {
	errs := map[string]string{}

	f.Text = utils.Sanitize(strings.TrimSpace(f.Text))
	if f.Text == "" {
		errs["text"] = "text cannot be empty"
	}

	if f.GroupID != nil {
		var count int64
		if err := db.Model(&models.Group{}).Where("id = ?", *f.GroupID).Count(&count).Error; err != nil || count == 0 {
			errs["group"] = "group does not exist"
		}
	}

	return errs
}

// Apply binds the validated fields onto the post. Author and publication
// date are never touched here.
func (f *PostForm) Apply(post *models.Post) {
	post.Text = f.Text
	post.GroupID = f.GroupID
	post.Image = strings.TrimSpace(f.Image)
}

// CommentForm carries the raw field values of an add-comment request.
type CommentForm struct {
	Text string `json:"text"`
}

// Validate sanitizes the text and reports whether the comment is worth keeping.
func (f *CommentForm) Validate() bool {
	f.Text = utils.Sanitize(strings.TrimSpace(f.Text))
	return f.Text != ""
}
