package backend

import (
	"context"
	"net/url"

	"parcel-delivery/models/user"
)

// UserRole returns the stored role for email, empty when the backend has none.
func (c *Client) UserRole(ctx context.Context, email string) (string, error) {
	var resp struct {
		Role string `json:"role"`
	}
	if err := c.get(ctx, "/users/"+escape(email)+"/role", nil, &resp); err != nil {
		return "", err
	}
	return resp.Role, nil
}

func (c *Client) SearchUsers(ctx context.Context, email string) ([]user.User, error) {
	var users []user.User
	if err := c.get(ctx, "/users/search", url.Values{"email": {email}}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, id, role string) error {
	return c.patch(ctx, "/users/"+escape(id)+"/role", map[string]string{"role": role}, nil)
}
