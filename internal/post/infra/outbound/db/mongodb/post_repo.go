package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	infraMongo "github.com/davicafu/adminlab/internal/infra/db/mongodb"
	"github.com/davicafu/adminlab/internal/post/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/mongocollection"
	"github.com/davicafu/adminlab/shared/platform/query"
)

const collectionName = "posts"

// PostRepoMongoDB implementa PostRepository sobre MongoDB. Los ids son
// numéricos y salen de la colección counters.
type PostRepoMongoDB struct {
	db    *mongo.Database
	posts *mongo.Collection
}

var _ domain.PostRepository = (*PostRepoMongoDB)(nil)

func NewPostRepoMongoDB(db *mongo.Database) *PostRepoMongoDB {
	return &PostRepoMongoDB{db: db, posts: db.Collection(collectionName)}
}

// EnsureIndexes crea el índice por categoría.
func (r *PostRepoMongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := r.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "categoryId", Value: 1}},
		Options: options.Index().SetName("idx_posts_category"),
	})
	return err
}

// --- Structs de BSON para el mapeo ---

type mongoPost struct {
	ID         int64     `bson:"_id"`
	Title      string    `bson:"title"`
	Slug       string    `bson:"slug"`
	Content    string    `bson:"content"`
	CategoryID int64     `bson:"categoryId"`
	Status     bool      `bson:"status"`
	Picture    string    `bson:"picture"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

// schema expone los campos listables con su clave bson.
var schema = mongocollection.Schema[*domain.Post]{
	Fields: map[string]string{
		"id":          "_id",
		"title":       "title",
		"slug":        "slug",
		"content":     "content",
		"category_id": "categoryId",
		"status":      "status",
		"created_at":  "createdAt",
	},
	Decode: func(raw bson.Raw) (*domain.Post, error) {
		var mp mongoPost
		if err := bson.Unmarshal(raw, &mp); err != nil {
			return nil, err
		}
		return fromMongoPost(&mp), nil
	},
}

func (r *PostRepoMongoDB) Create(ctx context.Context, p *domain.Post) error {
	id, err := infraMongo.NextID(ctx, r.db, collectionName)
	if err != nil {
		return err
	}
	p.ID = id
	_, err = r.posts.InsertOne(ctx, toMongoPost(p))
	return err
}

func (r *PostRepoMongoDB) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var mp mongoPost
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&mp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromMongoPost(&mp), nil
}

func (r *PostRepoMongoDB) Delete(ctx context.Context, id int64) error {
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepoMongoDB) Collection() query.Collection[*domain.Post] {
	return mongocollection.New(r.posts, schema)
}

func toMongoPost(p *domain.Post) mongoPost {
	return mongoPost{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		Content:    p.Content,
		CategoryID: p.CategoryID,
		Status:     p.Status,
		Picture:    p.Picture,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func fromMongoPost(mp *mongoPost) *domain.Post {
	return &domain.Post{
		ID:         mp.ID,
		Title:      mp.Title,
		Slug:       mp.Slug,
		Content:    mp.Content,
		CategoryID: mp.CategoryID,
		Status:     mp.Status,
		Picture:    mp.Picture,
		CreatedAt:  mp.CreatedAt.UTC(),
		UpdatedAt:  mp.UpdatedAt.UTC(),
	}
}
