// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ListResponse is the envelope Strapi wraps collection responses in.
type ListResponse[T any] struct {
	Data []T      `json:"data"`
	Meta ListMeta `json:"meta"`
}

// SingleResponse is the envelope for single-entry responses.
type SingleResponse[T any] struct {
	Data T `json:"data"`
}

// ListMeta carries the pagination block of a collection response.
type ListMeta struct {
	Pagination Pagination `json:"pagination"`
}

// Pagination mirrors Strapi's page-based pagination metadata.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// WriteRequest is the body shape Strapi expects for POST and PUT.
type WriteRequest struct {
	Data any `json:"data"`
}
