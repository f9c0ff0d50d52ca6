package controllers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube/yatube/models"
	"github.com/yatube/yatube/utils"
)

// GroupController manages topical groups. Creation and deletion are
// restricted to configured admin usernames; the original platform did this
// through its admin site.
type GroupController struct {
	db *gorm.DB
}

// NewGroupController creates a new GroupController instance.
func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{db: db}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ListGroups returns every group.
func (g *GroupController) ListGroups(ctx *gin.Context) {
	var groups []models.Group
	if err := g.db.Order("title").Find(&groups).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to list groups")
		return
	}
	utils.Success(ctx, gin.H{"groups": groups})
}

// CreateGroup creates a topical group. Admin only.
func (g *GroupController) CreateGroup(ctx *gin.Context) {
	if !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40310, "admin access required")
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required,min=1"`
		Slug        string `json:"slug" binding:"required,min=1"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	errs := map[string]string{}
	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		errs["title"] = "title cannot be empty"
	}
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		errs["slug"] = "slug must be a non-empty URL-safe identifier"
	}
	if len(errs) > 0 {
		utils.Invalid(ctx, http.StatusBadRequest, 40041, errs)
		return
	}

	var count int64
	if err := g.db.Model(&models.Group{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to check slug")
		return
	}
	if count > 0 {
		utils.Invalid(ctx, http.StatusBadRequest, 40042, map[string]string{"slug": "slug already in use"})
		return
	}

	group := models.Group{
		Title:       title,
		Slug:        slug,
		Description: utils.Sanitize(req.Description),
	}
	if err := g.db.Create(&group).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to create group")
		return
	}

	utils.Success(ctx, gin.H{"group": group})
}

// DeleteGroup removes a group and detaches its posts: their group reference
// is cleared, the posts themselves survive. Admin only.
func (g *GroupController) DeleteGroup(ctx *gin.Context) {
	if !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40311, "admin access required")
		return
	}

	var group models.Group
	if err := g.db.Where("slug = ?", ctx.Param("slug")).First(&group).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40413, "group not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to load group")
		return
	}

	err := g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", group.ID).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to delete group")
		return
	}

	utils.Success(ctx, gin.H{"message": "group deleted"})
}
