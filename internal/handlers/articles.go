package handlers

import (
	"errors"
	"net/http"

	"blog/internal/form"
	"blog/internal/service"
	"blog/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	msgArticleAdded   = "Article added successfully"
	msgArticleUpdated = "Article updated successfully"
	msgArticleDeleted = "Article deleted"
	msgNotAuthorized  = "No such article or you are not authorized to perform this action"
)

func (h *Handler) dashboard(c *gin.Context) {
	username := session.Get(c).Username()
	articles, err := h.services.Articles.ListByAuthor(c.Request.Context(), username)
	if err != nil {
		h.fail(c, "dashboard_list_failed", err, "username", username)
		return
	}
	h.render(c, http.StatusOK, "dashboard.html", gin.H{"Title": "Dashboard", "Articles": articles})
}

func (h *Handler) renderArticleForm(c *gin.Context, title, action string, f form.Article, errs form.Errors) {
	h.render(c, http.StatusOK, "article_form.html", gin.H{
		"Title":  title,
		"Action": action,
		"Form":   f,
		"Errors": errs,
	})
}

func (h *Handler) addArticleForm(c *gin.Context) {
	h.renderArticleForm(c, "Add Article", "/addarticle", form.Article{}, nil)
}

func (h *Handler) addArticle(c *gin.Context) {
	var f form.Article
	if errs := h.bindForm(c, &f); errs != nil {
		h.renderArticleForm(c, "Add Article", "/addarticle", f, errs)
		return
	}

	author := session.Get(c).Username()
	if _, err := h.services.Articles.Create(c.Request.Context(), author, f.Title, f.Content); err != nil {
		h.fail(c, "article_create_failed", err, "author", author)
		return
	}
	h.flashRedirect(c, session.Success, msgArticleAdded, "/dashboard")
}

// notAuthorized is the single answer for foreign, missing and malformed ids.
func (h *Handler) notAuthorized(c *gin.Context) {
	h.flashRedirect(c, session.Danger, msgNotAuthorized, "/")
}

func (h *Handler) editArticleForm(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		h.notAuthorized(c)
		return
	}
	author := session.Get(c).Username()
	a, err := h.services.Articles.GetOwned(c.Request.Context(), author, id)
	if errors.Is(err, service.ErrArticleNotFound) {
		h.notAuthorized(c)
		return
	}
	if err != nil {
		h.fail(c, "article_get_owned_failed", err, "id", id, "author", author)
		return
	}
	h.renderArticleForm(c, "Edit Article", c.Request.URL.Path, form.Article{Title: a.Title, Content: a.Content}, nil)
}

// editArticle authorizes before validating so a foreign id never reveals a form.
func (h *Handler) editArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		h.notAuthorized(c)
		return
	}
	ctx := c.Request.Context()
	author := session.Get(c).Username()

	if _, err := h.services.Articles.GetOwned(ctx, author, id); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			h.notAuthorized(c)
			return
		}
		h.fail(c, "article_get_owned_failed", err, "id", id, "author", author)
		return
	}

	var f form.Article
	if errs := h.bindForm(c, &f); errs != nil {
		h.renderArticleForm(c, "Edit Article", c.Request.URL.Path, f, errs)
		return
	}

	err := h.services.Articles.Update(ctx, author, id, f.Title, f.Content)
	if errors.Is(err, service.ErrArticleNotFound) {
		h.notAuthorized(c)
		return
	}
	if err != nil {
		h.fail(c, "article_update_failed", err, "id", id, "author", author)
		return
	}
	h.flashRedirect(c, session.Success, msgArticleUpdated, "/dashboard")
}

func (h *Handler) deleteArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		h.notAuthorized(c)
		return
	}
	author := session.Get(c).Username()

	err := h.services.Articles.Delete(c.Request.Context(), author, id)
	if errors.Is(err, service.ErrArticleNotFound) {
		h.notAuthorized(c)
		return
	}
	if err != nil {
		h.fail(c, "article_delete_failed", err, "id", id, "author", author)
		return
	}
	h.flashRedirect(c, session.Success, msgArticleDeleted, "/dashboard")
}
