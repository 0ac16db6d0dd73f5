package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/polatblog/blog-platform/internal/core/domain"
	"github.com/polatblog/blog-platform/internal/core/ports"
)

const articlesCollection = "articles"

type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: db.Collection(articlesCollection)}
}

type mongoArticle struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Subtitle string             `bson:"subtitle"`
	Author   string             `bson:"author"`
	Username string             `bson:"username"`
	PostedAt time.Time          `bson:"date_posted"`
	Content  string             `bson:"content"`
}

func toDomain(m mongoArticle) domain.Article {
	return domain.Article{
		ID:       m.ID.Hex(),
		Title:    m.Title,
		Subtitle: m.Subtitle,
		Author:   m.Author,
		Owner:    m.Username,
		PostedAt: m.PostedAt,
		Content:  m.Content,
	}
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoArticle{
		Title:    article.Title,
		Subtitle: article.Subtitle,
		Author:   article.Author,
		Username: article.Owner,
		PostedAt: article.PostedAt,
		Content:  article.Content,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	created := *article
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ArticleRepository) FindAll(ctx context.Context) ([]domain.Article, error) {
	return r.find(ctx, bson.M{})
}

func (r *ArticleRepository) FindByOwner(ctx context.Context, owner string) ([]domain.Article, error) {
	return r.find(ctx, bson.M{"username": owner})
}

func (r *ArticleRepository) find(ctx context.Context, filter bson.M) ([]domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Newest first; stable within a query.
	opts := options.Find().SetSort(bson.D{{Key: "date_posted", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoArticle
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	out := make([]domain.Article, len(docs))
	for i, d := range docs {
		out[i] = toDomain(d)
	}
	return out, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ArticleRepository) FindByIDAndOwner(ctx context.Context, id, owner string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "username": owner})
}

func (r *ArticleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoArticle
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}

	a := toDomain(doc)
	return &a, nil
}

// Update overwrites the editable fields on the article matching (id, owner).
// A zero match count means the id does not exist or the owner does not match;
// the two are indistinguishable on purpose.
func (r *ArticleRepository) Update(ctx context.Context, id, owner string, fields ports.ArticleUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "username": owner},
		bson.M{"$set": bson.M{
			"title":    fields.Title,
			"subtitle": fields.Subtitle,
			"author":   fields.Author,
			"content":  fields.Content,
		}},
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id, owner string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "username": owner})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the dashboard and index queries.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}},
		{Keys: bson.D{{Key: "date_posted", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
