package webui

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/listview"
	"shop_backoffice/internal/models"
)

const usersPath = "/users/viewUsers"

func (s *Server) viewUsers(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := s.api.GetUsers(ctx)
	if err != nil {
		s.fail(c, err, "load users", "Failed to load users. Please try again.")
	}

	list := listview.New(users, UsersPageSize)
	query := strings.TrimSpace(c.Query("q"))
	if query != "" {
		found, err := s.api.SearchUsers(ctx, query)
		if err != nil {
			s.fail(c, err, "search users", "Failed to search user. Please try again.")
		} else {
			list.Replace(found)
		}
	}
	list.SetPage(pageParam(c, "page"))

	s.render(c, http.StatusOK, "users.html", gin.H{
		"Title":  "User List",
		"Users":  list.Items(),
		"Offset": list.Offset(),
		"Pager":  newPager(c.Request.URL, "page", list),
		"Query":  query,
	})
}

func (s *Server) addUserPage(c *gin.Context) {
	s.renderUserForm(c, http.StatusOK, models.UserInfo{}, nil)
}

func (s *Server) addUser(c *gin.Context) {
	u := userFromForm(c)
	if err := u.Validate(); err != nil {
		s.renderUserForm(c, http.StatusBadRequest, u, messages(err, err.Error()))
		return
	}
	if _, err := s.api.CreateUser(c.Request.Context(), u); err != nil {
		log.Printf("❌ create user: %v", err)
		s.renderUserForm(c, http.StatusBadRequest, u,
			messages(err, "Failed to save user. Please check your inputs or try again."))
		return
	}
	s.flash(c, flashSuccess, "User saved successfully!")
	c.Redirect(http.StatusSeeOther, usersPath)
}

func (s *Server) editUserPage(c *gin.Context) {
	u, err := s.api.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if isNotFound(err) {
			s.notFound(c)
			return
		}
		s.fail(c, err, "load user", "Failed to load user. Please try again.")
		c.Redirect(http.StatusSeeOther, usersPath)
		return
	}
	s.renderUserForm(c, http.StatusOK, u, nil)
}

// editUser keeps the stored password when the field is left blank.
func (s *Server) editUser(c *gin.Context) {
	u := userFromForm(c)
	u.ID = c.Param("userId")
	if err := u.ValidateUpdate(); err != nil {
		s.renderUserForm(c, http.StatusBadRequest, u, messages(err, err.Error()))
		return
	}
	if _, err := s.api.UpdateUser(c.Request.Context(), u); err != nil {
		log.Printf("❌ update user %s: %v", u.ID, err)
		s.renderUserForm(c, http.StatusBadRequest, u,
			messages(err, "Failed to update user. Please check your inputs or try again."))
		return
	}
	s.flash(c, flashSuccess, "User updated successfully!")
	c.Redirect(http.StatusSeeOther, usersPath)
}

func (s *Server) deleteUser(c *gin.Context) {
	id := c.Param("userId")
	if err := s.api.DeleteUser(c.Request.Context(), id); err != nil {
		s.fail(c, err, "delete user "+id, "Failed to delete user. Please try again.")
	} else {
		s.flash(c, flashSuccess, "User deleted successfully!")
	}
	c.Redirect(http.StatusSeeOther, returnPath(c, usersPath))
}

// renderUserForm also lists the user's orders when editing. The password is
// never echoed back into the form.
func (s *Server) renderUserForm(c *gin.Context, status int, u models.UserInfo, errs []string) {
	u.UserPassword = ""
	data := gin.H{"Title": "Add User", "User": u}
	if u.ID != "" {
		data["Title"] = "Edit User"
		orders, err := s.api.GetTransactions(c.Request.Context())
		if err != nil {
			log.Printf("❌ load orders of user %s: %v", u.ID, err)
			errs = append(errs, "Failed to load orders. Please try again.")
		}
		models.SortByDateDesc(orders)
		list := listview.New(orders, UserOrdersPageSize)
		list.Filter(func(o models.CartInfo) bool { return strings.EqualFold(o.UserName, u.UserName) })
		list.SetPage(pageParam(c, "opage"))
		data["Orders"] = list.Items()
		data["OrderOffset"] = list.Offset()
		data["OrderPager"] = newPager(c.Request.URL, "opage", list)
	}
	data["Errors"] = errs
	s.render(c, status, "user_form.html", data)
}

func userFromForm(c *gin.Context) models.UserInfo {
	u := models.UserInfo{
		UserName:     c.PostForm("userName"),
		UserPassword: c.PostForm("userPassword"),
		UserFullName: c.PostForm("userFullName"),
		UserAddress:  c.PostForm("userAddress"),
		UserPhone:    c.PostForm("userPhone"),
		UserEmail:    c.PostForm("userEmail"),
	}
	u.Normalize()
	return u
}
