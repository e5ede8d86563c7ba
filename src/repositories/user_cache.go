package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"activitytracker/src/domain/entities"
	"activitytracker/src/repositories/mapper"
)

// Cache é o subconjunto do cliente Redis usado pelo cache de usuários.
// Cada valor tem uma chave de versão; escritas incrementam a versão antes de
// apagar o valor, e um SET só acontece se a versão lida antes da consulta ao
// banco não mudou.
type Cache interface {
	GetKey(ctx context.Context, key string) (string, bool, error)
	GetVersion(ctx context.Context, versionKey string) (int64, error)
	SetKeyIfVersion(ctx context.Context, key string, versionKey string, version int64, value string) (bool, error)
	IncrVersions(ctx context.Context, versionKeys []string) error
	InvalidateKeys(ctx context.Context, keys []string) error
}

// cacheEntry agrupa o valor e sua versão sob a mesma hash tag, para que o
// WATCH funcione em cluster.
type cacheEntry struct {
	key        string
	versionKey string
}

func userGraphEntry(id entities.ID) cacheEntry {
	return cacheEntry{
		key:        fmt.Sprintf("user:{%d}:graph", id),
		versionKey: fmt.Sprintf("user:{%d}:version", id),
	}
}

var userCountEntry = cacheEntry{
	key:        "user:{count}:value",
	versionKey: "user:{count}:version",
}

// UserCache guarda snapshots do grafo de usuários e a contagem total.
// Erros de Redis nas leituras viram miss; nunca derrubam a consulta.
type UserCache struct {
	logger *slog.Logger
	cache  Cache
}

func NewUserCache(logger *slog.Logger, cache Cache) *UserCache {
	return &UserCache{logger: logger, cache: cache}
}

func (c *UserCache) getUser(ctx context.Context, id entities.ID) (*entities.User, bool) {
	entry := userGraphEntry(id)

	data, found := c.get(ctx, entry)
	if !found {
		return nil, false
	}

	user, err := restoreUser(data)
	if err != nil {
		c.logger.Warn("Discarding unreadable cache entry", "key", entry.key, "error", err)
		return nil, false
	}

	c.logger.Debug("Cache HIT", "key", entry.key)
	return user, true
}

func (c *UserCache) getCount(ctx context.Context) (int64, bool) {
	data, found := c.get(ctx, userCountEntry)
	if !found {
		return 0, false
	}

	count, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		c.logger.Warn("Discarding unreadable cache entry", "key", userCountEntry.key, "error", err)
		return 0, false
	}
	return count, true
}

func (c *UserCache) get(ctx context.Context, entry cacheEntry) (string, bool) {
	data, found, err := c.cache.GetKey(ctx, entry.key)
	if err != nil {
		c.logger.Warn("Cache error", "key", entry.key, "error", err)
		return "", false
	}
	return data, found
}

// version deve ser lida antes da consulta ao banco cujo resultado será
// gravado com store. ok=false desliga o SET dessa leitura.
func (c *UserCache) version(ctx context.Context, entry cacheEntry) (int64, bool) {
	version, err := c.cache.GetVersion(ctx, entry.versionKey)
	if err != nil {
		c.logger.Warn("Cache error", "key", entry.versionKey, "error", err)
		return 0, false
	}
	return version, true
}

func (c *UserCache) storeUser(id entities.ID, version int64, user *entities.User) {
	// codifica na goroutine do chamador: o grafo é mutável
	value, err := snapshotUser(user)
	if err != nil {
		c.logger.Error("Failed to encode cache data", "user_id", id, "error", err)
		return
	}
	c.storeInBackground(userGraphEntry(id), version, value)
}

func (c *UserCache) storeCount(version int64, count int64) {
	c.storeInBackground(userCountEntry, version, strconv.FormatInt(count, 10))
}

func (c *UserCache) storeInBackground(entry cacheEntry, version int64, value string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stored, err := c.cache.SetKeyIfVersion(ctx, entry.key, entry.versionKey, version, value)
		if err != nil {
			c.logger.Error("Failed to set cache", "key", entry.key, "error", err)
			return
		}
		if !stored {
			c.logger.Debug("Cache SET skipped, entry changed", "key", entry.key)
			return
		}
		c.logger.Debug("Cache SET", "key", entry.key)
	}()
}

// Invalidate remove o grafo dos usuários informados e a contagem. As versões
// sobem antes do DEL, então um SET ainda em voo para essas chaves é descartado.
func (c *UserCache) Invalidate(ctx context.Context, ids ...entities.ID) error {
	entries := make([]cacheEntry, 0, len(ids)+1)
	for _, id := range ids {
		entries = append(entries, userGraphEntry(id))
	}
	entries = append(entries, userCountEntry)

	keys := make([]string, 0, len(entries))
	versionKeys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.key)
		versionKeys = append(versionKeys, entry.versionKey)
	}

	var errs []error
	if err := c.cache.IncrVersions(ctx, versionKeys); err != nil {
		errs = append(errs, fmt.Errorf("versions: %w", err))
	}
	if err := c.cache.InvalidateKeys(ctx, keys); err != nil {
		errs = append(errs, fmt.Errorf("keys: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("UserCache.Invalidate - %w", errors.Join(errs...))
	}
	return nil
}

// userSnapshot é a forma plana do grafo no cache. ActivityRequest.User aponta
// de volta para o usuário, então as referências viram IDs.
type userSnapshot struct {
	ID               entities.ID               `json:"id"`
	FirstName        string                    `json:"first_name"`
	LastName         string                    `json:"last_name"`
	Password         string                    `json:"password"`
	Username         string                    `json:"username"`
	Authorities      []entities.Authority      `json:"authorities"`
	ActivityIDs      []entities.ID             `json:"activity_ids"`
	Activities       []entities.Activity       `json:"activities"`
	ActivityRequests []activityRequestSnapshot `json:"activity_requests"`
}

type activityRequestSnapshot struct {
	ID          entities.ID                    `json:"id"`
	ActivityID  entities.ID                    `json:"activity_id"`
	RequestDate time.Time                      `json:"request_date"`
	Action      entities.ActivityRequestAction `json:"action"`
	Status      entities.ActivityRequestStatus `json:"status"`
}

func snapshotUser(user *entities.User) (string, error) {
	snapshot := userSnapshot{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Password:    user.Password,
		Username:    user.Username,
		Authorities: user.Authorities,
	}

	known := mapper.NewCanonicalMap[*entities.Activity]()
	for _, activity := range user.Activities {
		known.Reconcile(activity)
		snapshot.ActivityIDs = append(snapshot.ActivityIDs, activity.ID)
	}

	for _, request := range user.ActivityRequests {
		requestSnapshot := activityRequestSnapshot{
			ID:          request.ID,
			RequestDate: request.RequestDate,
			Action:      request.Action,
			Status:      request.Status,
		}
		if request.Activity != nil {
			known.Reconcile(request.Activity)
			requestSnapshot.ActivityID = request.Activity.ID
		}
		snapshot.ActivityRequests = append(snapshot.ActivityRequests, requestSnapshot)
	}

	for _, activity := range known.Values() {
		snapshot.Activities = append(snapshot.Activities, *activity)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("snapshotUser - failed to marshal user %d: %w", user.ID, err)
	}
	return string(data), nil
}

// restoreUser reconstrói o grafo passando pelo mapa canônico, então a
// atividade de um request é a mesma instância da lista do usuário.
func restoreUser(data string) (*entities.User, error) {
	var snapshot userSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("restoreUser - failed to unmarshal cached data: %w", err)
	}

	user := &entities.User{
		ID:          snapshot.ID,
		FirstName:   snapshot.FirstName,
		LastName:    snapshot.LastName,
		Password:    snapshot.Password,
		Username:    snapshot.Username,
		Authorities: snapshot.Authorities,
	}

	activities := mapper.NewCanonicalMap[*entities.Activity]()
	for i := range snapshot.Activities {
		activity := snapshot.Activities[i]
		activities.Reconcile(&activity)
	}

	for _, id := range snapshot.ActivityIDs {
		activity, ok := activities.Get(id)
		if !ok {
			return nil, fmt.Errorf("restoreUser - activity %d missing from snapshot", id)
		}
		user.AddActivity(activity)
	}

	for _, rs := range snapshot.ActivityRequests {
		request := &entities.ActivityRequest{
			ID:          rs.ID,
			User:        user,
			RequestDate: rs.RequestDate,
			Action:      rs.Action,
			Status:      rs.Status,
		}
		if rs.ActivityID.IsAssigned() {
			activity, ok := activities.Get(rs.ActivityID)
			if !ok {
				return nil, fmt.Errorf("restoreUser - activity %d missing from snapshot", rs.ActivityID)
			}
			request.Activity = activity
		}
		user.AddActivityRequest(request)
	}

	return user, nil
}
