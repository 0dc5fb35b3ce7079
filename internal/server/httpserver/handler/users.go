package handler

import "fmt"

// handleListUsers handles GET /users.
func (h *Handler) handleListUsers(r *Request) (*Response, error) {
	users, count := h.users.List(r.Context())
	return OK(listUsersResponse{Users: users, Count: count}), nil
}

// handleGetUser handles GET /users/{id}.
func (h *Handler) handleGetUser(r *Request) (*Response, error) {
	user, err := h.users.Get(r.Context(), r.ParamID(0))
	if err != nil {
		return nil, err
	}
	return OK(user), nil
}

// handleCreateUser handles POST /users.
func (h *Handler) handleCreateUser(r *Request) (*Response, error) {
	name, email, err := userFields(r.Body)
	if err != nil {
		return nil, err
	}

	user, err := h.users.Create(r.Context(), name, email)
	if err != nil {
		return nil, err
	}

	h.log.Info("user created", "id", user.ID, "email", user.Email)
	return Created(user, fmt.Sprintf("/users/%d", user.ID)), nil
}

// handleReplaceUser handles PUT /users/{id}: full replacement, all
// fields required.
func (h *Handler) handleReplaceUser(r *Request) (*Response, error) {
	name, email, err := userFields(r.Body)
	if err != nil {
		return nil, err
	}

	user, err := h.users.Replace(r.Context(), r.ParamID(0), name, email)
	if err != nil {
		return nil, err
	}
	return OK(user), nil
}

// handlePatchUser handles PATCH /users/{id}: only supplied fields change.
func (h *Handler) handlePatchUser(r *Request) (*Response, error) {
	patch, err := userPatch(r.Body)
	if err != nil {
		return nil, err
	}

	user, err := h.users.Patch(r.Context(), r.ParamID(0), patch)
	if err != nil {
		return nil, err
	}
	return OK(user), nil
}

// handleDeleteUser handles DELETE /users/{id}.
func (h *Handler) handleDeleteUser(r *Request) (*Response, error) {
	if err := h.users.Delete(r.Context(), r.ParamID(0)); err != nil {
		return nil, err
	}
	h.log.Info("user deleted", "id", r.ParamID(0))
	return NoContent(), nil
}
