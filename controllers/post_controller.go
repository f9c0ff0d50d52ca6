package controllers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yatube/yatube/config"
	"github.com/yatube/yatube/middleware"
	"github.com/yatube/yatube/models"
	"github.com/yatube/yatube/utils"
)

// PostController manages listings, post CRUD and comments.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// postQuery returns the base listing query. Listing order is ascending by
// publication date (oldest first), matching the original platform.
func (p *PostController) postQuery() *gorm.DB {
	return p.db.Preload("Author").Preload("Group").Order("pub_date, id")
}

// paginated counts the query, selects the requested page and returns the
// items plus pagination metadata.
func (p *PostController) paginated(ctx *gin.Context, q *gorm.DB) (gin.H, bool) {
	var total int64
	if err := q.Model(&models.Post{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count posts")
		return nil, false
	}

	offset, meta := utils.Paginate(utils.ParsePage(ctx.Query("page")), total)

	var posts []models.Post
	if err := q.Offset(offset).Limit(utils.PageSize).Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to list posts")
		return nil, false
	}

	return gin.H{"items": posts, "pagination": meta}, true
}

// Index returns the site-wide paginated post listing.
func (p *PostController) Index(ctx *gin.Context) {
	payload, ok := p.paginated(ctx, p.postQuery())
	if !ok {
		return
	}
	utils.Success(ctx, payload)
}

// GroupPosts returns a group and its paginated posts.
func (p *PostController) GroupPosts(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var group models.Group
	if err := p.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "group not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load group")
		return
	}

	payload, ok := p.paginated(ctx, p.postQuery().Where("group_id = ?", group.ID))
	if !ok {
		return
	}
	payload["group"] = group
	utils.Success(ctx, payload)
}

// Profile returns an author, whether the requester follows them, and the
// author's paginated posts. Works for anonymous requesters too.
func (p *PostController) Profile(ctx *gin.Context) {
	username := ctx.Param("username")

	var author models.User
	if err := p.db.Where("username = ?", username).First(&author).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40411, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load user")
		return
	}

	following := false
	if userID, ok := getUserID(ctx); ok {
		var count int64
		if err := p.db.Model(&models.Follow{}).Where("user_id = ? AND author_id = ?", userID, author.ID).Count(&count).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to check follow")
			return
		}
		following = count > 0
	}

	payload, ok := p.paginated(ctx, p.postQuery().Where("author_id = ?", author.ID))
	if !ok {
		return
	}
	payload["author"] = author
	payload["following"] = following
	utils.Success(ctx, payload)
}

// PostDetail returns a single post with its comments and the author's total post count.
func (p *PostController) PostDetail(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := p.db.Preload("Author").Where("post_id = ?", post.ID).Order("created, id").Find(&comments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to load comments")
		return
	}

	var authorPosts int64
	if err := p.db.Model(&models.Post{}).Where("author_id = ?", post.AuthorID).Count(&authorPosts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to count author posts")
		return
	}

	utils.Success(ctx, gin.H{
		"post":               post,
		"comments":           comments,
		"author_posts_count": authorPosts,
	})
}

// CreatePost allows authenticated users to create new posts. The publication
// date is assigned server-side and the author is always the current user.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var form PostForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	if errs := form.Validate(p.db); len(errs) > 0 {
		utils.Invalid(ctx, http.StatusBadRequest, 40021, errs)
		return
	}

	post := models.Post{AuthorID: userID}
	form.Apply(&post)

	if err := p.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	if err := p.db.Preload("Author").Preload("Group").First(&post, post.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to load post")
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// EditPost lets the author update the text, group and image of their post.
// A non-author gets the unmodified post back with no error, mirroring the
// original silent redirect to the detail page. A validation failure on an
// author's edit is fatal rather than recoverable; the original behaved that
// way and it is preserved deliberately.
func (p *PostController) EditPost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}

	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}

	if post.AuthorID != userID {
		// Authorization short-circuit, not an error.
		utils.Success(ctx, gin.H{"post": post})
		return
	}

	var form PostForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	if errs := form.Validate(p.db); len(errs) > 0 {
		utils.Sugar.Errorw("invalid edit input", "post_id", post.ID, "errors", errs)
		utils.Error(ctx, http.StatusInternalServerError, 50012, "invalid post data")
		return
	}

	form.Apply(post)
	updates := map[string]interface{}{
		"text":     post.Text,
		"group_id": post.GroupID,
		"image":    post.Image,
	}
	if err := p.db.Model(post).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to update post")
		return
	}

	if err := p.db.Preload("Author").Preload("Group").First(post, post.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50029, "failed to load post")
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// AddComment records a comment on a post. Empty comment text is dropped
// silently: the caller still lands on the post detail, nothing is persisted.
func (p *PostController) AddComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}

	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}

	var form CommentForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid request payload")
		return
	}

	if !form.Validate() {
		utils.Success(ctx, gin.H{"post_id": post.ID})
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Text:     form.Text,
	}
	if err := p.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create comment")
		return
	}

	if err := p.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load comment")
		return
	}

	utils.Success(ctx, gin.H{"post_id": post.ID, "comment": comment})
}

// UploadImage stores an uploaded image under a date-partitioned directory and
// returns its public URL for use in a post's image field.
func (p *PostController) UploadImage(ctx *gin.Context) {
	if _, ok := getUserID(ctx); !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "unauthorized")
		return
	}

	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		file, header, err = ctx.Request.FormFile("file")
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40030, "no file uploaded")
			return
		}
	}
	defer file.Close()

	const maxSize = 10 * 1024 * 1024
	if header.Size > maxSize {
		utils.Error(ctx, http.StatusBadRequest, 40032, "file size exceeds 10MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		utils.Error(ctx, http.StatusBadRequest, 40031, "unsupported image type")
		return
	}

	now := time.Now()
	datePath := filepath.Join(now.Format("2006"), now.Format("01"), now.Format("02"))
	baseDir := filepath.Join(config.Get().UploadsDir, datePath)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to create upload directory")
		return
	}

	safeName := uuid.NewString() + ext
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to save file")
		return
	}
	defer out.Close()

	written, err := io.Copy(out, &io.LimitedReader{R: file, N: maxSize + 1})
	if err != nil || written > maxSize {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40032, "file size exceeds 10MB")
		return
	}

	utils.Success(ctx, gin.H{"url": "/static/uploads/" + filepath.ToSlash(filepath.Join(datePath, safeName))})
}

// loadPost fetches the post from the :id route parameter and writes the
// error response itself when that fails.
func (p *PostController) loadPost(ctx *gin.Context) (*models.Post, bool) {
	var post models.Post
	if err := p.db.Preload("Author").Preload("Group").First(&post, "id = ?", ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50019, "failed to load post")
		}
		return nil, false
	}
	return &post, true
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func isAdmin(ctx *gin.Context) bool {
	unameVal, exists := ctx.Get(middleware.ContextUsernameKey)
	if !exists {
		return false
	}
	uname, _ := unameVal.(string)
	if uname == "" {
		return false
	}
	for _, u := range config.Get().AdminUsernames {
		if strings.EqualFold(strings.TrimSpace(u), uname) {
			return true
		}
	}
	return false
}
