package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

const collectionShowtimes = "showtimes"

// ShowtimeRepository implements ports.ShowtimeRepository using MongoDB.
type ShowtimeRepository struct {
	col *mongo.Collection
}

func NewShowtimeRepository(db *mongo.Database) *ShowtimeRepository {
	return &ShowtimeRepository{col: db.Collection(collectionShowtimes)}
}

func (r *ShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) (*domain.Showtime, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	showtime.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, showtime); err != nil {
		return nil, err
	}
	return showtime, nil
}

func (r *ShowtimeRepository) FindByID(ctx context.Context, id string) (*domain.Showtime, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var showtime domain.Showtime
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&showtime); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShowtimeNotFound
		}
		return nil, err
	}
	return &showtime, nil
}

func (r *ShowtimeRepository) ListByMovie(ctx context.Context, movieID string) ([]*domain.Showtime, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"movie_id": movieID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var showtimes []*domain.Showtime
	for cursor.Next(ctx) {
		var showtime domain.Showtime
		if err := cursor.Decode(&showtime); err != nil {
			return nil, err
		}
		showtimes = append(showtimes, &showtime)
	}
	return showtimes, cursor.Err()
}

func (r *ShowtimeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrShowtimeNotFound
	}
	return nil
}
