package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"partybets/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPartyService_CreateParty(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		setupMocks    func(*TestMocks)
		expectedError string
	}{
		{
			name:  "trims name",
			input: "  Super Bowl Night  ",
			setupMocks: func(mocks *TestMocks) {
				mocks.PartyRepo.On("Create", mock.Anything, "Super Bowl Night").
					Return(&entities.Party{ID: TestPartyID, Name: "Super Bowl Night"}, nil)
			},
		},
		{
			name:          "blank name",
			input:         "   ",
			expectedError: "party name cannot be empty",
		},
		{
			name:          "name too long",
			input:         strings.Repeat("p", 101),
			expectedError: "party name cannot exceed 100 characters",
		},
		{
			name:  "repository failure",
			input: "Game Night",
			setupMocks: func(mocks *TestMocks) {
				mocks.PartyRepo.On("Create", mock.Anything, "Game Night").Return(nil, errors.New("db error"))
			},
			expectedError: "failed to create party: db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := NewTestMocks()
			if tt.setupMocks != nil {
				tt.setupMocks(mocks)
			}
			service := NewPartyService(mocks.PartyRepo)

			party, err := service.CreateParty(context.Background(), tt.input)

			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				assert.Nil(t, party)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Super Bowl Night", party.Name)
			}
			mocks.AssertAllExpectations(t)
		})
	}
}

func TestPartyService_GetParty(t *testing.T) {
	mocks := NewTestMocks()
	service := NewPartyService(mocks.PartyRepo)
	party := &entities.Party{ID: TestPartyID, Name: "Game Night", CreatedAt: fixedNow}

	mocks.PartyRepo.On("GetByID", mock.Anything, TestPartyID).Return(party, nil)
	mocks.PartyRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, nil)

	found, err := service.GetParty(context.Background(), TestPartyID)
	require.NoError(t, err)
	assert.Equal(t, party, found)

	_, err = service.GetParty(context.Background(), 404)
	assert.ErrorIs(t, err, entities.ErrPartyNotFound)

	mocks.AssertAllExpectations(t)
}

func TestPartyService_ListParties(t *testing.T) {
	mocks := NewTestMocks()
	service := NewPartyService(mocks.PartyRepo)
	mocks.PartyRepo.On("List", mock.Anything).Return([]*entities.Party{{ID: 2}, {ID: 1}}, nil)

	parties, err := service.ListParties(context.Background())

	require.NoError(t, err)
	assert.Len(t, parties, 2)
	mocks.AssertAllExpectations(t)
}
