package book

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type bookDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	Genre         *string            `bson:"genre,omitempty"`
	PublishedYear *int               `bson:"publishedYear,omitempty"`
	Rating        *float64           `bson:"rating,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d bookDocument) toBook() Book {
	return Book{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Author:        d.Author,
		Genre:         d.Genre,
		PublishedYear: d.PublishedYear,
		Rating:        d.Rating,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

// MongoRepo stores books as documents in a single collection.
type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) ListAll(ctx context.Context) ([]Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "mongo: find books")
	}
	var docs []bookDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "mongo: decode books")
	}

	out := make([]Book, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toBook())
	}
	return out, nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrMalformedID
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var d bookDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Wrapf(err, "mongo: find book %s", id)
	}
	return d.toBook(), nil
}

func (r *MongoRepo) Create(ctx context.Context, f Fields) (Book, error) {
	b := NewBook(f)
	if err := ValidateRecord(b); err != nil {
		return Book{}, err
	}

	// Mongo keeps millisecond precision; truncate so the returned record
	// equals what a later read yields.
	now := time.Now().UTC().Truncate(time.Millisecond)
	d := bookDocument{
		ID:            primitive.NewObjectID(),
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		PublishedYear: b.PublishedYear,
		Rating:        b.Rating,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return Book{}, errors.Wrap(err, "mongo: insert book")
	}
	return d.toBook(), nil
}

func (r *MongoRepo) FindAndUpdate(ctx context.Context, id string, p Patch) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrMalformedID
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if verr := ValidatePatch(p); verr != nil {
		// Absence outranks a bad patch.
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
		if err != nil {
			return Book{}, errors.Wrapf(err, "mongo: count book %s", id)
		}
		if n == 0 {
			return Book{}, ErrNotFound
		}
		return Book{}, verr
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d bookDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, updateDocument(p, time.Now().UTC()), opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Wrapf(err, "mongo: update book %s", id)
	}
	return d.toBook(), nil
}

func (r *MongoRepo) FindAndDelete(ctx context.Context, id string) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrMalformedID
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var d bookDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Wrapf(err, "mongo: delete book %s", id)
	}
	return d.toBook(), nil
}

func (r *MongoRepo) IsWellFormedID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// updateDocument turns p into $set/$unset operators. A null clears the field.
func updateDocument(p Patch, now time.Time) bson.D {
	set := bson.D{}
	unset := bson.D{}

	if p.Title.Set {
		set = append(set, bson.E{Key: "title", Value: deref(p.Title.Value)})
	}
	if p.Author.Set {
		set = append(set, bson.E{Key: "author", Value: deref(p.Author.Value)})
	}
	addOptional(&set, &unset, "genre", p.Genre)
	addOptional(&set, &unset, "publishedYear", p.PublishedYear)
	addOptional(&set, &unset, "rating", p.Rating)
	set = append(set, bson.E{Key: "updatedAt", Value: now})

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}

func addOptional[T any](set, unset *bson.D, key string, o Optional[T]) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		*unset = append(*unset, bson.E{Key: key, Value: ""})
		return
	}
	*set = append(*set, bson.E{Key: key, Value: *o.Value})
}
