package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cookbook/internal/model"
	"cookbook/internal/repository"
)

// Collection is the name users are stored under.
const Collection = "users"

type userDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d userDoc) toModel() model.User {
	return model.User{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

// UserMongo stores users as documents keyed by their UUID.
type UserMongo struct {
	coll *mongo.Collection
}

func NewUserMongo(coll *mongo.Collection) *UserMongo {
	return &UserMongo{coll: coll}
}

var _ repository.UserRepository = (*UserMongo)(nil)

func (r *UserMongo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	doc := userDoc{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	out := doc.toModel()
	return &out, nil
}

func (r *UserMongo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	out := doc.toModel()
	return &out, nil
}

func (r *UserMongo) List(ctx context.Context) ([]model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]model.User, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toModel())
	}
	return items, nil
}

func (r *UserMongo) Update(ctx context.Context, u *model.User) (*model.User, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{"name": u.Name, "updated_at": u.UpdatedAt}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, u.ID)
}

func (r *UserMongo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
