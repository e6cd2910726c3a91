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

const collectionUsers = "users"

// UserRepository implements ports.UserRepository on the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// userDoc keeps the field names of the existing users collection.
type userDoc struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty"`
	Name     string              `bson:"name"`
	Email    string              `bson:"email"`
	Password string              `bson:"password"`
	Lessons  []lessonProgressDoc `bson:"lessons"`
}

type lessonProgressDoc struct {
	Level                int  `bson:"level"`
	Book                 int  `bson:"book"`
	Lesson               int  `bson:"lesson"`
	CompletedInteractive bool `bson:"completedInteractive"`
	CompletedGame        bool `bson:"completedGame"`
}

func toUserDoc(u *domain.User) userDoc {
	doc := userDoc{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.PasswordHash,
		Lessons:  make([]lessonProgressDoc, 0, len(u.Lessons)),
	}
	for _, l := range u.Lessons {
		doc.Lessons = append(doc.Lessons, lessonProgressDoc(l))
	}
	return doc
}

func (d userDoc) toDomain() *domain.User {
	u := &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Lessons:      make([]domain.LessonProgress, 0, len(d.Lessons)),
	}
	for _, l := range d.Lessons {
		u.Lessons = append(u.Lessons, domain.LessonProgress(l))
	}
	return u
}

// Create inserts a new user document.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDoc(user)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, storageError("insert user", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID looks a user up by its hex ObjectID. Malformed ids are reported
// as domain.ErrUserNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageError("find user", err)
	}
	return doc.toDomain(), nil
}

// Save overwrites the mutable fields of an existing user. Saving the same
// state twice leaves the document unchanged.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDoc(user)
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":     doc.Name,
		"email":    doc.Email,
		"password": doc.Password,
		"lessons":  doc.Lessons,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, storageError("save user", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	doc.ID = oid
	return doc.toDomain(), nil
}

// List returns every user in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storageError("list users", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageError("decode users", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

// EnsureIndexes creates the unique email index backing ErrDuplicateEmail.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
