package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/policy"
	"github.com/inkpress/inkpress/store"
	"github.com/inkpress/inkpress/utils"
)

// PostController serves the post pages and mutations.
type PostController struct {
	posts  store.PostStore
	access policy.Policy
}

// NewPostController creates a PostController.
func NewPostController(posts store.PostStore, access policy.Policy) *PostController {
	return &PostController{posts: posts, access: access}
}

// Home lists all posts, newest first.
func (p *PostController) Home(ctx *gin.Context) {
	posts, err := p.posts.ListAll()
	if err != nil {
		utils.Sugar.Errorf("list posts: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to load posts")
		return
	}
	utils.HTML(ctx, http.StatusOK, "index.html", gin.H{
		"Title": "All Blogs",
		"Blogs": posts,
	})
}

// CreateForm shows the post-creation page.
func (p *PostController) CreateForm(ctx *gin.Context) {
	utils.HTML(ctx, http.StatusOK, "create.html", gin.H{"Title": "New Blog"})
}

// Create persists a new post attributed to the current identity. The route
// sits behind LoginRequired; the policy check stays anyway so attribution
// can never come from an anonymous request.
func (p *PostController) Create(ctx *gin.Context) {
	identity := utils.CurrentIdentity(ctx)
	if !p.access.CanCreate(identity) {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	fields := readPostForm(ctx)
	post := models.Post{
		Title:      fields.Title,
		Snippet:    fields.Snippet,
		Body:       fields.Body,
		AuthorID:   identity.ID,
		AuthorName: identity.Username,
	}

	if err := p.posts.Create(&post); err != nil {
		if errors.Is(err, store.ErrValidation) {
			utils.HTML(ctx, http.StatusBadRequest, "create.html", gin.H{
				"Title": "New Blog",
				"Error": "title, snippet and body are all required",
				"Blog":  &post,
			})
			return
		}
		utils.Sugar.Errorf("create post: %v", err)
		ctx.String(http.StatusInternalServerError, "failed to create post")
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}

// Show renders one post. Any lookup failure, including a malformed id, is
// a 404.
func (p *PostController) Show(ctx *gin.Context) {
	post, err := p.posts.Get(ctx.Param("id"))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			utils.Sugar.Errorf("load post %s: %v", ctx.Param("id"), err)
		}
		utils.NotFound(ctx)
		return
	}
	utils.HTML(ctx, http.StatusOK, "details.html", gin.H{
		"Title": post.Title,
		"Blog":  post,
	})
}

// EditForm shows the pre-filled edit page.
func (p *PostController) EditForm(ctx *gin.Context) {
	post, err := p.posts.Get(ctx.Param("id"))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			utils.Sugar.Errorf("load post %s: %v", ctx.Param("id"), err)
		}
		utils.NotFound(ctx)
		return
	}
	utils.HTML(ctx, http.StatusOK, "edit.html", gin.H{
		"Title": "Edit Blog",
		"Blog":  post,
	})
}

// Update overwrites the mutable fields of a post.
func (p *PostController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	post, err := p.posts.Get(id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			utils.Sugar.Errorf("load post %s: %v", id, err)
		}
		utils.NotFound(ctx)
		return
	}

	if !p.access.CanUpdate(utils.CurrentIdentity(ctx), post) {
		ctx.String(http.StatusForbidden, "you can only edit your own post")
		return
	}

	fields := readPostForm(ctx)
	if err := p.posts.Update(id, fields); err != nil {
		if errors.Is(err, store.ErrValidation) {
			post.Title, post.Snippet, post.Body = fields.Title, fields.Snippet, fields.Body
			utils.HTML(ctx, http.StatusBadRequest, "edit.html", gin.H{
				"Title": "Edit Blog",
				"Error": "title, snippet and body are all required",
				"Blog":  post,
			})
			return
		}
		utils.Sugar.Errorf("update post %s: %v", id, err)
		ctx.String(http.StatusInternalServerError, "failed to update post")
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}

// Delete removes a post and redirects home. Deleting an id that no longer
// exists is a success, so the operation is idempotent.
func (p *PostController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	post, err := p.posts.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.Redirect(http.StatusFound, "/")
			return
		}
		utils.Sugar.Errorf("load post %s: %v", id, err)
		ctx.String(http.StatusInternalServerError, "failed to delete post")
		return
	}

	if !p.access.CanDelete(utils.CurrentIdentity(ctx), post) {
		ctx.String(http.StatusForbidden, "you can only delete your own post")
		return
	}

	if err := p.posts.Delete(id); err != nil {
		utils.Sugar.Errorf("delete post %s: %v", id, err)
		ctx.String(http.StatusInternalServerError, "failed to delete post")
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}

func readPostForm(ctx *gin.Context) store.PostFields {
	return store.PostFields{
		Title:   utils.SanitizePlain(strings.TrimSpace(ctx.PostForm("title"))),
		Snippet: utils.SanitizePlain(strings.TrimSpace(ctx.PostForm("snippet"))),
		Body:    utils.SanitizeBody(strings.TrimSpace(ctx.PostForm("body"))),
	}
}
