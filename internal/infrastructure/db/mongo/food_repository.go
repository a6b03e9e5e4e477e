package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tastetrail/food-review-api/internal/core/domain"
)

const foodsCollection = "foods"

type FoodRepository struct {
	coll *mongo.Collection
}

func NewFoodRepository(db *mongo.Database) *FoodRepository {
	return &FoodRepository{coll: db.Collection(foodsCollection)}
}

type mongoRatingSummary struct {
	Average float64 `bson:"average"`
	Count   int64   `bson:"count"`
}

type mongoFood struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Cuisine     string             `bson:"cuisine"`
	ImageURL    string             `bson:"image_url"`
	IsFeatured  bool               `bson:"is_featured"`
	Tags        []string           `bson:"tags,omitempty"`
	Rating      mongoRatingSummary `bson:"rating_summary"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *FoodRepository) Create(ctx context.Context, food *domain.Food) (*domain.Food, error) {
	res, err := r.coll.InsertOne(ctx, toMongoFood(food))
	if err != nil {
		return nil, fmt.Errorf("insert food: %w", err)
	}

	created := *food
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *FoodRepository) FindByID(ctx context.Context, id string) (*domain.Food, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodNotFound
	}

	var mf mongoFood
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, fmt.Errorf("find food: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FoodRepository) List(ctx context.Context) ([]*domain.Food, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer cur.Close(ctx)

	var foods []*domain.Food
	for cur.Next(ctx) {
		var mf mongoFood
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode food: %w", err)
		}
		foods = append(foods, mf.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

func (r *FoodRepository) Update(ctx context.Context, food *domain.Food) error {
	oid, err := primitive.ObjectIDFromHex(food.ID)
	if err != nil {
		return domain.ErrFoodNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoFood(food))
	if err != nil {
		return fmt.Errorf("update food: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFoodNotFound
	}
	return nil
}

func (r *FoodRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFoodNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFoodNotFound
	}
	return nil
}

// UpdateRatingSummary persists the cached review projection. Called only
// by the review service inside its transaction scope.
func (r *FoodRepository) UpdateRatingSummary(ctx context.Context, foodID string, summary domain.RatingSummary) error {
	oid, err := primitive.ObjectIDFromHex(foodID)
	if err != nil {
		return domain.ErrFoodNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"rating_summary": mongoRatingSummary{Average: summary.Average, Count: summary.Count},
			"updated_at":     time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("update rating summary: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFoodNotFound
	}
	return nil
}

func (r *FoodRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count foods: %w", err)
	}
	return n, nil
}

func toMongoFood(f *domain.Food) mongoFood {
	mf := mongoFood{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Cuisine:     f.Cuisine,
		ImageURL:    f.ImageURL,
		IsFeatured:  f.IsFeatured,
		Tags:        f.Tags,
		Rating:      mongoRatingSummary{Average: f.Rating.Average, Count: f.Rating.Count},
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(f.ID); err == nil {
		mf.ID = oid
	}
	return mf
}

func (mf *mongoFood) toDomain() *domain.Food {
	return &domain.Food{
		ID:          mf.ID.Hex(),
		Name:        mf.Name,
		Description: mf.Description,
		Price:       mf.Price,
		Cuisine:     mf.Cuisine,
		ImageURL:    mf.ImageURL,
		IsFeatured:  mf.IsFeatured,
		Tags:        mf.Tags,
		Rating:      domain.RatingSummary{Average: mf.Rating.Average, Count: mf.Rating.Count},
		CreatedAt:   mf.CreatedAt,
		UpdatedAt:   mf.UpdatedAt,
	}
}

// EnsureIndexes creates the catalog query indexes.
func (r *FoodRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "cuisine", Value: 1}}},
		{Keys: bson.D{{Key: "is_featured", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
