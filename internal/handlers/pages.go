package handlers

import (
	"errors"
	"net/http"

	"blog/internal/models"
	"blog/internal/service"
	"blog/internal/session"

	"github.com/gin-gonic/gin"
)

const msgNoSearchResults = "No article matched the search keyword"

func (h *Handler) index(c *gin.Context) {
	h.render(c, http.StatusOK, "index.html", gin.H{"Title": "Home"})
}

func (h *Handler) about(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", gin.H{"Title": "About"})
}

func (h *Handler) listArticles(c *gin.Context) {
	articles, err := h.services.Articles.List(c.Request.Context())
	if err != nil {
		h.fail(c, "articles_list_failed", err)
		return
	}
	h.render(c, http.StatusOK, "articles.html", gin.H{"Title": "Articles", "Articles": articles})
}

// showArticle renders an empty view for unknown or malformed ids.
func (h *Handler) showArticle(c *gin.Context) {
	var article *models.Article
	if id, ok := articleID(c); ok {
		a, err := h.services.Articles.Get(c.Request.Context(), id)
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
		case err != nil:
			h.fail(c, "article_get_failed", err, "id", id)
			return
		default:
			article = a
		}
	}

	title := "Article"
	if article != nil {
		title = article.Title
	}
	h.render(c, http.StatusOK, "article.html", gin.H{"Title": title, "Article": article})
}

func (h *Handler) searchRedirect(c *gin.Context) {
	h.redirect(c, "/")
}

func (h *Handler) search(c *gin.Context) {
	keyword := c.PostForm("keyword")
	articles, err := h.services.Articles.Search(c.Request.Context(), keyword)
	if err != nil {
		h.fail(c, "articles_search_failed", err, "keyword", keyword)
		return
	}
	if len(articles) == 0 {
		h.flashRedirect(c, session.Warning, msgNoSearchResults, "/articles")
		return
	}
	h.render(c, http.StatusOK, "articles.html", gin.H{"Title": "Search", "Articles": articles, "Keyword": keyword})
}
