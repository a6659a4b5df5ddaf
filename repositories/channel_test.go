package repositories

import (
	"fmt"
	"sync"
	"testing"

	"plainchat/domain"
	"plainchat/errors"

	"github.com/stretchr/testify/require"
)

func TestChannelRepository_CreateMutateDelete(t *testing.T) {
	req := require.New(t)
	repo := NewChannelRepository(SetupTestDB(t), testLog)

	ch := domain.Channel{
		ID: "c1", Name: "team", Key: "k", Owner: "a", Version: 1,
		Members: []domain.ChannelMember{{ID: "a", Status: domain.MemberJoined}},
	}
	req.NoError(repo.Create(ch))
	req.Error(repo.Create(ch))

	updated, err := repo.Mutate("c1", func(c *domain.Channel) error {
		*c = c.WithMember("b", domain.MemberPending)
		c.Version++
		return nil
	})
	req.NoError(err)
	req.Equal(int64(2), updated.Version)
	req.True(updated.HasMember("b"))

	_, err = repo.Mutate("c1", func(c *domain.Channel) error {
		c.Name = "lost"
		return errors.ErrStaleVersion
	})
	req.ErrorIs(err, errors.ErrStaleVersion)

	stored, err := repo.Get("c1")
	req.NoError(err)
	req.Equal("team", stored.Name)

	_, err = repo.Mutate("missing", func(c *domain.Channel) error { return nil })
	req.ErrorIs(err, errors.ErrChannelNotFound)

	req.NoError(repo.Delete("c1"))
	_, err = repo.Get("c1")
	req.ErrorIs(err, errors.ErrChannelNotFound)
}

func TestChannelRepository_ConcurrentMutationsAreNotLost(t *testing.T) {
	req := require.New(t)
	repo := NewChannelRepository(SetupTestDB(t), testLog)
	req.NoError(repo.Create(domain.Channel{ID: "c1", Owner: "a", Version: 0}))

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Mutate("c1", func(c *domain.Channel) error {
				*c = c.WithMember(fmt.Sprintf("m%d", i), domain.MemberJoined)
				return nil
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	ch, err := repo.Get("c1")
	req.NoError(err)
	req.Len(ch.Members, 4)
}
