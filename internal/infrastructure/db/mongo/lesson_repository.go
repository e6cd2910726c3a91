package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bigbear/lessons-api/internal/core/domain"
)

const collectionLessons = "lessons"

// LessonRepository implements ports.LessonRepository on the lessons collection.
type LessonRepository struct {
	col *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{col: db.Collection(collectionLessons)}
}

type lessonDoc struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Level                int                `bson:"level"`
	Book                 int                `bson:"book"`
	Lesson               int                `bson:"lesson"`
	InteractiveContent   string             `bson:"interactiveContent,omitempty"`
	SongsVideosContent   string             `bson:"songsVideosContent,omitempty"`
	GameContent          string             `bson:"gameContent,omitempty"`
	WarmUpContent        string             `bson:"warmUpContent,omitempty"`
	MoreContent          string             `bson:"moreContent,omitempty"`
	CompletedInteractive bool               `bson:"completedInteractive"`
	CompletedSongsVideos bool               `bson:"completedSongsVideos"`
	CompletedGames       bool               `bson:"completedGames"`
	CompletedWarmUp      bool               `bson:"completedWarmUp"`
	CompletedMore        bool               `bson:"completedMore"`
}

func (d lessonDoc) toDomain() *domain.Lesson {
	return &domain.Lesson{
		ID:                   d.ID.Hex(),
		Level:                d.Level,
		Book:                 d.Book,
		Lesson:               d.Lesson,
		InteractiveContent:   d.InteractiveContent,
		SongsVideosContent:   d.SongsVideosContent,
		GameContent:          d.GameContent,
		WarmUpContent:        d.WarmUpContent,
		MoreContent:          d.MoreContent,
		CompletedInteractive: d.CompletedInteractive,
		CompletedSongsVideos: d.CompletedSongsVideos,
		CompletedGames:       d.CompletedGames,
		CompletedWarmUp:      d.CompletedWarmUp,
		CompletedMore:        d.CompletedMore,
	}
}

// lessonFilter builds the query for a catalog listing.
func lessonFilter(f domain.LessonFilter) bson.M {
	filter := bson.M{}
	if f.Level != nil {
		filter["level"] = *f.Level
	}
	if f.Book != nil {
		filter["book"] = *f.Book
	}
	return filter
}

func coordinateFilter(c domain.LessonCoordinate) bson.M {
	return bson.M{"level": c.Level, "book": c.Book, "lesson": c.Lesson}
}

// List returns catalog entries ordered by level, book and lesson.
func (r *LessonRepository) List(ctx context.Context, f domain.LessonFilter) ([]*domain.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "level", Value: 1},
		{Key: "book", Value: 1},
		{Key: "lesson", Value: 1},
	})
	cur, err := r.col.Find(ctx, lessonFilter(f), opts)
	if err != nil {
		return nil, storageError("list lessons", err)
	}
	defer cur.Close(ctx)

	var docs []lessonDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageError("decode lessons", err)
	}

	lessons := make([]*domain.Lesson, 0, len(docs))
	for _, d := range docs {
		lessons = append(lessons, d.toDomain())
	}
	return lessons, nil
}

// FindByCoordinate returns the first catalog entry at coord.
func (r *LessonRepository) FindByCoordinate(ctx context.Context, coord domain.LessonCoordinate) (*domain.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc lessonDoc
	err := r.col.FindOne(ctx, coordinateFilter(coord)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, storageError("find lesson", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the lookup index on the lesson coordinate. It is not
// unique: existing catalogs may carry duplicates.
func (r *LessonRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "level", Value: 1}, {Key: "book", Value: 1}, {Key: "lesson", Value: 1}},
	})
	return err
}
