package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube/yatube/models"
	"github.com/yatube/yatube/utils"
)

// FollowController manages follow edges and the personalized feed.
type FollowController struct {
	db    *gorm.DB
	posts *PostController
}

// NewFollowController creates a new FollowController instance.
func NewFollowController(db *gorm.DB) *FollowController {
	return &FollowController{db: db, posts: NewPostController(db)}
}

// Feed returns the paginated posts of every author the current user follows.
func (f *FollowController) Feed(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	followed := f.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)
	payload, ok := f.posts.paginated(ctx, f.posts.postQuery().Where("author_id IN (?)", followed))
	if !ok {
		return
	}
	utils.Success(ctx, payload)
}

// Follow creates a follow edge towards the named author. Following yourself
// or someone you already follow is a silent no-op.
func (f *FollowController) Follow(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40121, "unauthorized")
		return
	}

	author, ok := f.loadAuthor(ctx)
	if !ok {
		return
	}

	if author.ID != userID {
		var count int64
		if err := f.db.Model(&models.Follow{}).Where("user_id = ? AND author_id = ?", userID, author.ID).Count(&count).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to check follow")
			return
		}
		if count == 0 {
			if err := f.db.Create(&models.Follow{UserID: userID, AuthorID: author.ID}).Error; err != nil {
				utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to follow")
				return
			}
		}
	}

	utils.Success(ctx, gin.H{"username": author.Username, "following": author.ID != userID})
}

// Unfollow removes the follow edge towards the named author. Removing an
// edge that does not exist is a no-op.
func (f *FollowController) Unfollow(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40122, "unauthorized")
		return
	}

	author, ok := f.loadAuthor(ctx)
	if !ok {
		return
	}

	if err := f.db.Where("user_id = ? AND author_id = ?", userID, author.ID).Delete(&models.Follow{}).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to unfollow")
		return
	}

	utils.Success(ctx, gin.H{"username": author.Username, "following": false})
}

func (f *FollowController) loadAuthor(ctx *gin.Context) (*models.User, bool) {
	var author models.User
	if err := f.db.Where("username = ?", ctx.Param("username")).First(&author).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40412, "user not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load user")
		}
		return nil, false
	}
	return &author, true
}
