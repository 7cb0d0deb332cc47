package user

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"parcel-delivery/controllers/response"
	"parcel-delivery/httpServices/imagehost"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	user_model "parcel-delivery/models/user"
	user_type "parcel-delivery/types/user"

	"github.com/gofiber/fiber/v2"
)

type Directory interface {
	SearchUsers(ctx context.Context, email string) ([]user_model.User, error)
	UpdateUserRole(ctx context.Context, id, role string) error
}

type RoleCache interface {
	Invalidate(ctx context.Context, email string) error
}

type ImageUploader interface {
	Upload(ctx context.Context, filename string, image io.Reader) (string, error)
}

type UserController struct {
	directory Directory
	roles     RoleCache
	images    ImageUploader
}

func NewUserController(directory Directory, roles RoleCache, images ImageUploader) *UserController {
	return &UserController{directory: directory, roles: roles, images: images}
}

// Search finds accounts by (partial) email for the make-admin screen.
func (uc *UserController) Search(c *fiber.Ctx) error {
	var req user_type.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query")
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, err, "Invalid search")
	}

	users, err := uc.directory.SearchUsers(c.UserContext(), req.Email)
	if err != nil {
		return response.Error(c, err, "Failed to search users")
	}
	if users == nil {
		users = []user_model.User{}
	}
	return response.Success(c, fiber.StatusOK, "Users fetched successfully", users)
}

func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	var req user_type.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, err, "Invalid role")
	}

	id := c.Params("id")
	if err := uc.directory.UpdateUserRole(c.UserContext(), id, req.Role); err != nil {
		return response.Error(c, err, "Failed to update role")
	}
	if uc.roles != nil {
		if err := uc.roles.Invalidate(c.UserContext(), req.Email); err != nil {
			logger.Warning(fmt.Sprintf("Failed to drop cached role for %s: %v", req.Email, err))
		}
	}

	logger.Success(fmt.Sprintf("User %s is now %s", id, req.Role))
	return response.Success(c, fiber.StatusOK, "Role updated successfully", fiber.Map{"id": id, "role": req.Role})
}

// UploadPhoto stores the multipart "image" field at the image host and returns its URL.
func (uc *UserController) UploadPhoto(c *fiber.Ctx) error {
	if middleware.CurrentIdentity(c) == nil {
		return response.Unauthorized(c)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "image file is required")
	}
	if fh.Size > imagehost.MaxImageBytes {
		return response.BadRequest(c, "image must be 5MB or smaller")
	}

	f, err := fh.Open()
	if err != nil {
		logger.Error("Failed to open uploaded image", err)
		return response.BadRequest(c, "could not read image")
	}
	defer f.Close()

	url, err := uc.images.Upload(c.UserContext(), filepath.Base(fh.Filename), f)
	if err != nil {
		return response.Error(c, err, "Failed to upload image")
	}
	return response.Success(c, fiber.StatusCreated, "Image uploaded successfully", fiber.Map{"url": url})
}
