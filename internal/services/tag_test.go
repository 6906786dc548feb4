package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
	"github.com/sbilibin2017/recipe-app-api/internal/services"
)

func TestTagService(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		setup   func(r *services.MockTagReader, w *services.MockTagWriter)
		run     func(svc *services.TagService) error
		wantErr error
	}{
		{
			name: "list assigned only",
			setup: func(r *services.MockTagReader, _ *services.MockTagWriter) {
				r.EXPECT().List(gomock.Any(), userID, true).Return([]models.TagDB{{ID: 1}}, nil)
			},
			run: func(svc *services.TagService) error {
				tags, err := svc.List(context.Background(), userID, true)
				assert.Len(t, tags, 1)
				return err
			},
		},
		{
			name: "update trims name",
			setup: func(_ *services.MockTagReader, w *services.MockTagWriter) {
				w.EXPECT().Update(gomock.Any(), userID, int64(1), "Dinner").
					Return(&models.TagDB{ID: 1, Name: "Dinner"}, nil)
			},
			run: func(svc *services.TagService) error {
				_, err := svc.Update(context.Background(), userID, 1, " Dinner ")
				return err
			},
		},
		{
			name: "update missing",
			setup: func(_ *services.MockTagReader, w *services.MockTagWriter) {
				w.EXPECT().Update(gomock.Any(), userID, int64(1), "x").Return(nil, nil)
			},
			run: func(svc *services.TagService) error {
				_, err := svc.Update(context.Background(), userID, 1, "x")
				return err
			},
			wantErr: services.ErrTagNotFound,
		},
		{
			name: "update conflict",
			setup: func(_ *services.MockTagReader, w *services.MockTagWriter) {
				w.EXPECT().Update(gomock.Any(), userID, int64(1), "x").
					Return(nil, fmt.Errorf("tag: %w", models.ErrConflict))
			},
			run: func(svc *services.TagService) error {
				_, err := svc.Update(context.Background(), userID, 1, "x")
				return err
			},
			wantErr: services.ErrTagAlreadyExists,
		},
		{
			name: "delete",
			setup: func(_ *services.MockTagReader, w *services.MockTagWriter) {
				w.EXPECT().Delete(gomock.Any(), userID, int64(1)).Return(true, nil)
			},
			run: func(svc *services.TagService) error {
				return svc.Delete(context.Background(), userID, 1)
			},
		},
		{
			name: "delete missing",
			setup: func(_ *services.MockTagReader, w *services.MockTagWriter) {
				w.EXPECT().Delete(gomock.Any(), userID, int64(1)).Return(false, nil)
			},
			run: func(svc *services.TagService) error {
				return svc.Delete(context.Background(), userID, 1)
			},
			wantErr: services.ErrTagNotFound,
		},
		{
			name: "delete error",
			setup: func(_ *services.MockTagReader, w *services.MockTagWriter) {
				w.EXPECT().Delete(gomock.Any(), userID, int64(1)).Return(false, errors.New("db error"))
			},
			run: func(svc *services.TagService) error {
				return svc.Delete(context.Background(), userID, 1)
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := services.NewMockTagReader(ctrl)
			writer := services.NewMockTagWriter(ctrl)
			tt.setup(reader, writer)

			err := tt.run(services.NewTagService(reader, writer))
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr.Error())
		})
	}
}
