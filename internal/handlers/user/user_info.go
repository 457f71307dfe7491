package user

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
	"shop_backoffice/internal/utils"
)

const msgUserNameTaken = "Username already exists"

func sanitize(u models.UserInfo) models.UserInfo {
	u.UserPassword = ""
	return u
}

// listUsers caches the sanitized list so password hashes never reach Redis.
func (h *Handler) listUsers(ctx context.Context) ([]models.UserInfo, error) {
	return cache.Remember(ctx, h.Cache, cache.KeyUsers, func(ctx context.Context) ([]models.UserInfo, error) {
		users, err := h.Store.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		for i := range users {
			users[i] = sanitize(users[i])
		}
		return users, nil
	})
}

func (h *Handler) GetUserInfos(c *gin.Context) {
	users, err := h.listUsers(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUserInfoByID(c *gin.Context) {
	u, err := h.Store.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, sanitize(u))
}

// SearchUserInfo matches ?userName= against user and full names.
func (h *Handler) SearchUserInfo(c *gin.Context) {
	ctx := c.Request.Context()
	name := strings.TrimSpace(c.Query("userName"))

	if name != "" {
		found, err := h.Search.SearchUsers(ctx, name)
		if err == nil {
			for i := range found {
				found[i] = sanitize(found[i])
			}
			c.JSON(http.StatusOK, found)
			return
		}
		handlers.LogSearchFallback("user", err)
	}

	users, err := h.listUsers(ctx)
	if err != nil {
		handlers.RespondError(c, err, "search users")
		return
	}
	matches := make([]models.UserInfo, 0, len(users))
	for _, u := range users {
		if handlers.ContainsFold(u.UserName, name) || handlers.ContainsFold(u.UserFullName, name) {
			matches = append(matches, u)
		}
	}
	c.JSON(http.StatusOK, matches)
}

func (h *Handler) PostUserInfo(c *gin.Context) {
	var u models.UserInfo
	if err := c.ShouldBindJSON(&u); err != nil {
		handlers.BadRequest(c, "invalid user body: "+err.Error())
		return
	}
	u.Normalize()
	if err := u.Validate(); err != nil {
		handlers.RespondError(c, err, "validate user")
		return
	}

	hash, err := utils.HashPassword(u.UserPassword)
	if err != nil {
		handlers.RespondError(c, err, "hash password")
		return
	}
	u.UserPassword = hash

	ctx := c.Request.Context()
	created, err := h.Store.CreateUser(ctx, u)
	if errors.Is(err, repository.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": msgUserNameTaken})
		return
	}
	if err != nil {
		handlers.RespondError(c, err, "create user")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyUsers)
	h.Search.IndexUser(created)

	c.Set(utils.CtxAuditResourceID, created.ID)
	c.JSON(http.StatusCreated, sanitize(created))
}

// PutUserInfo keeps the stored password when userPassword is blank.
func (h *Handler) PutUserInfo(c *gin.Context) {
	var u models.UserInfo
	if err := c.ShouldBindJSON(&u); err != nil {
		handlers.BadRequest(c, "invalid user body: "+err.Error())
		return
	}
	if u.ID == "" {
		handlers.BadRequest(c, "id is required")
		return
	}
	c.Set(utils.CtxAuditResourceID, u.ID)

	u.Normalize()
	if err := u.ValidateUpdate(); err != nil {
		handlers.RespondError(c, err, "validate user")
		return
	}
	if u.UserPassword != "" {
		hash, err := utils.HashPassword(u.UserPassword)
		if err != nil {
			handlers.RespondError(c, err, "hash password")
			return
		}
		u.UserPassword = hash
	}

	ctx := c.Request.Context()
	updated, err := h.Store.UpdateUser(ctx, u)
	if errors.Is(err, repository.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": msgUserNameTaken})
		return
	}
	if err != nil {
		handlers.RespondError(c, err, "update user")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyUsers)
	h.Search.IndexUser(updated)

	c.JSON(http.StatusOK, sanitize(updated))
}

func (h *Handler) DeleteUserInfo(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.Store.DeleteUser(ctx, id); err != nil {
		handlers.RespondError(c, err, "delete user")
		return
	}
	h.Cache.Invalidate(ctx, cache.KeyUsers)
	h.Search.DeleteUser(id)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
