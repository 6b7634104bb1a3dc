package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
	"github.com/sirpyerre/wavegame-api/internal/core/ports"
)

const sessionsCollection = "game_sessions"

var _ ports.SessionRepository = (*SessionRepository)(nil)

type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionsCollection)}
}

type sessionDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Score       int       `bson:"score"`
	WaveReached int       `bson:"wave_reached"`
	Duration    int       `bson:"duration"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d sessionDocument) toDomain() domain.GameSession {
	return domain.GameSession{
		ID:          d.ID,
		UserID:      d.UserID,
		Score:       d.Score,
		WaveReached: d.WaveReached,
		Duration:    d.Duration,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// leaderboardRow is a session joined with its owner's username.
type leaderboardRow struct {
	Score       int       `bson:"score"`
	WaveReached int       `bson:"wave_reached"`
	Duration    int       `bson:"duration"`
	CreatedAt   time.Time `bson:"created_at"`
	Username    string    `bson:"username"`
}

func (r *SessionRepository) CreateGameSession(ctx context.Context, s *domain.GameSession) (*domain.GameSession, error) {
	doc := sessionDocument{
		ID:          s.ID,
		UserID:      s.UserID,
		Score:       s.Score,
		WaveReached: s.WaveReached,
		Duration:    s.Duration,
		CreatedAt:   s.CreatedAt,
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *SessionRepository) ListSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.GameSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	var docs []sessionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	out := make([]domain.GameSession, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// ListTopSessions sorts on the leaderboard index and joins usernames for the
// returned page only.
func (r *SessionRepository) ListTopSessions(ctx context.Context, limit int) ([]domain.RankedEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "score", Value: -1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
	}
	// $limit rejects zero; a non-positive limit means every session.
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(limit)}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$user"}, {Key: "preserveNullAndEmptyArrays", Value: true}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "score", Value: 1},
			{Key: "wave_reached", Value: 1},
			{Key: "duration", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "username", Value: "$user.username"},
		}}},
	)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("leaderboard aggregate: %w", err)
	}
	var rows []leaderboardRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}

	entries := make([]domain.RankedEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.RankedEntry{
			Username:    row.Username,
			Score:       row.Score,
			WaveReached: row.WaveReached,
			Duration:    row.Duration,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return entries, nil
}
