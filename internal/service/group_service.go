package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"shrinklink/internal/apperrors"
	"shrinklink/internal/auth"
	"shrinklink/internal/dto"
	"shrinklink/internal/model"
	"shrinklink/internal/store"
	"shrinklink/response"
)

// GroupService manages link groups and the cascade delete of their members.
type GroupService struct {
	groups store.GroupStore
	links  store.LinkStore
	cache  linkCache
}

func NewGroupService(groups store.GroupStore, links store.LinkStore, linkSvc *LinkService) *GroupService {
	return &GroupService{
		groups: groups,
		links:  links,
		cache:  linkSvc.cache,
	}
}

func (s *GroupService) Create(ctx context.Context, req dto.CreateGroupRequest, actor auth.Actor) (*model.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ValidationKeyed("error.group_name_required")
	}

	group := &model.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     actor.UserID,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	return group, nil
}

func (s *GroupService) List(ctx context.Context, actor auth.Actor, page, size int) (*response.PageResponse[model.Group], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	groups, total, err := s.groups.ListByOwner(ctx, actor.UserID, page, size)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	totalPage := (int(total) + size - 1) / size
	return &response.PageResponse[model.Group]{
		Page:      page,
		Size:      size,
		Total:     int(total),
		TotalPage: totalPage,
		List:      groups,
	}, nil
}

// Delete removes a group and all its member links. Member deletions run in
// parallel and keep going past individual failures; failures are reported
// in aggregate and leave the group record in place so nothing dangles.
func (s *GroupService) Delete(ctx context.Context, id uint, actor auth.Actor) error {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return apperrors.PersistenceError(err)
	}
	if group == nil {
		return apperrors.NotFound()
	}
	if !actor.Authenticated() || group.OwnerID != actor.UserID {
		return apperrors.Unauthorized()
	}

	members, err := s.links.ListByGroup(ctx, id)
	if err != nil {
		return apperrors.PersistenceError(err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0
	for _, member := range members {
		wg.Add(1)
		go func(link model.Link) {
			defer wg.Done()
			if err := s.links.Delete(ctx, link.ID); err != nil {
				zap.L().Error("Failed to delete group member link",
					zap.Uint("group_id", id),
					zap.Uint("link_id", link.ID),
					zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			s.cache.invalidate(link.ShortCode)
			s.cache.dropPending(link.ShortCode)
		}(member)
	}
	wg.Wait()

	if failed > 0 {
		return apperrors.WithCode(http.StatusInternalServerError, apperrors.KindPersistence,
			fmt.Sprintf("%d of %d links failed to delete", failed, len(members)))
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}
