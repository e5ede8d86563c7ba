package repositories

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"activitytracker/src/domain/entities"
	"activitytracker/src/repositories/mapper"
	"activitytracker/src/test_artefacts/comparer"
	"activitytracker/src/test_artefacts/stubs"

	"github.com/pashagolub/pgxmock/v2"
)

// fakeCache imita o SET condicional do Redis: a comparação de versão e a
// escrita acontecem sob o mesmo lock.
type fakeCache struct {
	mu             sync.Mutex
	data           map[string]string
	versions       map[string]int64
	setDelay       time.Duration
	setCalls       int
	failGet        bool
	failInvalidate bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string), versions: make(map[string]int64)}
}

func (c *fakeCache) GetKey(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return "", false, errors.New("redis down")
	}
	value, ok := c.data[key]
	return value, ok, nil
}

func (c *fakeCache) GetVersion(ctx context.Context, versionKey string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return 0, errors.New("redis down")
	}
	return c.versions[versionKey], nil
}

func (c *fakeCache) SetKeyIfVersion(ctx context.Context, key string, versionKey string, version int64, value string) (bool, error) {
	c.mu.Lock()
	delay := c.setDelay
	c.mu.Unlock()
	time.Sleep(delay)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	if c.versions[versionKey] != version {
		return false, nil
	}
	c.data[key] = value
	return true, nil
}

func (c *fakeCache) IncrVersions(ctx context.Context, versionKeys []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failInvalidate {
		return errors.New("redis down")
	}
	for _, versionKey := range versionKeys {
		c.versions[versionKey]++
	}
	return nil
}

func (c *fakeCache) InvalidateKeys(ctx context.Context, keys []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failInvalidate {
		return errors.New("redis down")
	}
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

func (c *fakeCache) put(key string, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func (c *fakeCache) sets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setCalls
}

var _ = Describe("CachedUserRepository", func() {
	var (
		ctx        context.Context
		mock       pgxmock.PgxPoolIface
		cache      *fakeCache
		repository *CachedUserRepository
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		mock, err = pgxmock.NewPool()
		Expect(err).NotTo(HaveOccurred())

		cache = newFakeCache()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		userRepository := NewUserRepository(mock)
		repository = NewCachedUserRepository(logger, userRepository, userRepository, NewUserCache(logger, cache))
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		mock.Close()
	})

	expectUserWithAuthority := func(authority string) {
		mock.ExpectQuery(`FROM users WHERE users\.id = \$1`).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(1), "Ana", "Lima", "hash", "ana"))
		mock.ExpectQuery(authoritiesPattern).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{mapper.UserAuthority}).AddRow(authority))
		mock.ExpectQuery(activitiesPattern).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(activityColumns).AddRow(nullActivityValues()...))
		mock.ExpectQuery(requestsPattern).WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(requestColumns).AddRow(append([]any{nil, nil, nil, nil, nil}, nullActivityValues()...)...))
	}

	Context("FindByID", func() {
		It("should read through on a miss and serve the next call from cache", func() {
			// ARRANGE
			mock.ExpectQuery(`FROM users WHERE users\.id = \$1`).WithArgs(int64(1)).
				WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(1), "Ana", "Lima", "hash", "ana"))
			expectEmptyRelations(mock, 1)

			// ACT
			fromDB, ok, err := repository.FindByID(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			Eventually(func() bool { return cache.has(userGraphEntry(1).key) }).Should(BeTrue())

			fromCache, ok, err := repository.FindByID(ctx, 1)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(fromCache).To(BeComparableTo(fromDB, comparer.UserGraph()))
		})

		It("should fall back to the database and skip caching when the cache errors", func() {
			// ARRANGE
			cache.failGet = true
			mock.ExpectQuery(`FROM users WHERE users\.id = \$1`).WithArgs(int64(1)).
				WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(1), "Ana", "Lima", "hash", "ana"))
			expectEmptyRelations(mock, 1)

			// ACT
			user, ok, err := repository.FindByID(ctx, 1)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(user.Username).To(Equal("ana"))
			Consistently(cache.sets, "100ms").Should(BeZero())
		})

		It("should discard an unreadable entry and read from the database", func() {
			// ARRANGE
			cache.put(userGraphEntry(1).key, "not json")
			expectUserWithAuthority("ADMIN")

			// ACT
			user, ok, err := repository.FindByID(ctx, 1)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(user.Authorities).To(ConsistOf(entities.AuthorityAdmin))
		})

		It("should not cache the graph read before an update that finishes first", func() {
			// ARRANGE
			cache.setDelay = 50 * time.Millisecond
			expectUserWithAuthority("ADMIN")

			before, ok, err := repository.FindByID(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(before.Authorities).To(ConsistOf(entities.AuthorityAdmin))

			updated := &entities.User{ID: 1, FirstName: "Ana", LastName: "Lima", Password: "hash", Username: "ana"}
			updated.AddAuthority(entities.AuthorityUser)
			mock.ExpectExec(`UPDATE users SET`).
				WithArgs("Ana", "Lima", "hash", "ana", int64(1)).
				WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			mock.ExpectExec(`DELETE FROM user_authorities`).WithArgs(int64(1)).
				WillReturnResult(pgxmock.NewResult("DELETE", 1))
			mock.ExpectExec(`INSERT INTO user_authorities`).WithArgs(int64(1), "USER").
				WillReturnResult(pgxmock.NewResult("INSERT", 1))

			// ACT
			Expect(repository.Update(ctx, updated)).To(Succeed())
			Eventually(cache.sets, "1s").Should(Equal(1))

			expectUserWithAuthority("USER")
			after, ok, err := repository.FindByID(ctx, 1)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(after.Authorities).To(ConsistOf(entities.AuthorityUser))
		})
	})

	Context("GetNumberOfRecords", func() {
		It("should cache the count", func() {
			// ARRANGE
			mock.ExpectQuery(`SELECT count`).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))

			// ACT
			first, err := repository.GetNumberOfRecords(ctx)
			Expect(err).NotTo(HaveOccurred())
			Eventually(func() bool { return cache.has(userCountEntry.key) }).Should(BeTrue())
			second, err := repository.GetNumberOfRecords(ctx)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(Equal(int64(5)))
			Expect(second).To(Equal(int64(5)))
		})

		It("should not cache a count read before a delete that finishes first", func() {
			// ARRANGE
			cache.setDelay = 50 * time.Millisecond
			mock.ExpectQuery(`SELECT count`).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
			mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(7)).
				WillReturnResult(pgxmock.NewResult("DELETE", 1))
			mock.ExpectQuery(`SELECT count`).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))

			// ACT
			before, err := repository.GetNumberOfRecords(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(repository.Delete(ctx, 7)).To(Succeed())
			Eventually(cache.sets, "1s").Should(Equal(1))
			after, err := repository.GetNumberOfRecords(ctx)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(before).To(Equal(int64(5)))
			Expect(after).To(Equal(int64(4)))
		})
	})

	Context("writes", func() {
		It("should invalidate the user graph and the count before Delete returns", func() {
			// ARRANGE
			cache.put(userGraphEntry(7).key, "{}")
			cache.put(userCountEntry.key, "3")
			mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(7)).
				WillReturnResult(pgxmock.NewResult("DELETE", 1))

			// ACT
			err := repository.Delete(ctx, 7)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(cache.has(userGraphEntry(7).key)).To(BeFalse())
			Expect(cache.has(userCountEntry.key)).To(BeFalse())
		})

		It("should keep the cache untouched when the write fails", func() {
			// ARRANGE
			cache.put(userGraphEntry(7).key, "{}")
			mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(7)).WillReturnError(errors.New("boom"))

			// ACT
			err := repository.Delete(ctx, 7)

			// ASSERT
			Expect(err).To(HaveOccurred())
			Expect(cache.has(userGraphEntry(7).key)).To(BeTrue())
		})

		It("should report success when only the invalidation fails", func() {
			// ARRANGE
			cache.failInvalidate = true
			mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(7)).
				WillReturnResult(pgxmock.NewResult("DELETE", 1))

			// ACT
			err := repository.Delete(ctx, 7)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
		})
	})
})

var _ = Describe("UserCache", func() {
	var (
		ctx   context.Context
		cache *fakeCache
		users *UserCache
	)

	BeforeEach(func() {
		ctx = context.Background()
		cache = newFakeCache()
		users = NewUserCache(slog.New(slog.NewTextHandler(io.Discard, nil)), cache)
	})

	Context("Invalidate", func() {
		It("should drop the graphs and the count and bump their versions", func() {
			// ARRANGE
			cache.put(userGraphEntry(1).key, "{}")
			cache.put(userGraphEntry(2).key, "{}")
			cache.put(userCountEntry.key, "2")

			// ACT
			err := users.Invalidate(ctx, 1, 2)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(cache.has(userGraphEntry(1).key)).To(BeFalse())
			Expect(cache.has(userGraphEntry(2).key)).To(BeFalse())
			Expect(cache.has(userCountEntry.key)).To(BeFalse())
			Expect(cache.GetVersion(ctx, userGraphEntry(1).versionKey)).To(Equal(int64(1)))
			Expect(cache.GetVersion(ctx, userCountEntry.versionKey)).To(Equal(int64(1)))
		})

		It("should return an error when redis fails", func() {
			cache.failInvalidate = true

			err := users.Invalidate(ctx, 1)

			Expect(err).To(MatchError(ContainSubstring("UserCache.Invalidate")))
		})
	})

	Context("cache entries", func() {
		It("should keep each value and its version under the same hash tag", func() {
			entry := userGraphEntry(42)

			Expect(entry.key).To(Equal("user:{42}:graph"))
			Expect(entry.versionKey).To(Equal("user:{42}:version"))
		})
	})

	Context("snapshots", func() {
		It("should restore shared activity instances", func() {
			// ARRANGE
			activity := stubs.NewActivityStub().WithID(10).Get()
			other := stubs.NewActivityStub().WithID(11).Get()
			onlyRequested := stubs.NewActivityStub().WithID(12).Get()
			user := stubs.NewUserStub().WithID(1).
				WithActivities(activity, other).
				WithActivityRequests(
					stubs.NewActivityRequestStub().WithID(5).WithActivity(activity).Get(),
					stubs.NewActivityRequestStub().WithID(6).WithActivity(onlyRequested).Get(),
					stubs.NewActivityRequestStub().WithID(7).Get(),
				).Get()

			// ACT
			data, err := snapshotUser(user)
			Expect(err).NotTo(HaveOccurred())
			restored, err := restoreUser(data)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(restored).To(BeComparableTo(user, comparer.UserGraph()))
			Expect(restored.ActivityRequests[0].Activity).To(BeIdenticalTo(restored.Activities[0]))
			Expect(restored.ActivityRequests[0].User).To(BeIdenticalTo(restored))
			Expect(restored.Activities).To(HaveLen(2))
			Expect(restored.ActivityRequests[2].Activity).To(BeNil())
		})

		It("should reject unreadable data", func() {
			_, err := restoreUser("not json")

			Expect(err).To(HaveOccurred())
		})
	})
})
