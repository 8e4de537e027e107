package dto

import "github.com/expensly/expensly_backend/internal/core/domain"

// MenuItemResponse is one navigation entry visible to the requesting user.
type MenuItemResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavigationResponse is the ordered navigation menu for the requesting user's role.
type NavigationResponse struct {
	Role  domain.UserRole    `json:"role"`
	Items []MenuItemResponse `json:"items"`
}

// ToNavigationResponse converts visible menu items to the API representation.
func ToNavigationResponse(role domain.UserRole, items []domain.MenuItem) NavigationResponse {
	resp := NavigationResponse{Role: role, Items: make([]MenuItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = MenuItemResponse{ID: item.ID, Label: item.Label, Path: item.Path}
	}
	return resp
}
