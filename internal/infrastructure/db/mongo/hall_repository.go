package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

const (
	collectionHalls = "cinema_halls"
	collectionSeats = "seats"
)

// HallRepository implements ports.HallRepository using MongoDB. Halls and
// seats are deployment-time data, written by seeding tooling, so only the
// read surface is exposed here.
type HallRepository struct {
	halls *mongo.Collection
	seats *mongo.Collection
}

func NewHallRepository(db *mongo.Database) *HallRepository {
	return &HallRepository{
		halls: db.Collection(collectionHalls),
		seats: db.Collection(collectionSeats),
	}
}

func (r *HallRepository) FindByID(ctx context.Context, id string) (*domain.CinemaHall, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var hall domain.CinemaHall
	if err := r.halls.FindOne(ctx, bson.M{"_id": id}).Decode(&hall); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHallNotFound
		}
		return nil, err
	}
	return &hall, nil
}

func (r *HallRepository) ListAll(ctx context.Context) ([]*domain.CinemaHall, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.halls.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var halls []*domain.CinemaHall
	for cursor.Next(ctx) {
		var hall domain.CinemaHall
		if err := cursor.Decode(&hall); err != nil {
			return nil, err
		}
		halls = append(halls, &hall)
	}
	return halls, cursor.Err()
}

func (r *HallRepository) ListSeats(ctx context.Context, hallID string) ([]*domain.Seat, error) {
	return r.findSeats(ctx, bson.M{"hall_id": hallID})
}

func (r *HallRepository) FindSeats(ctx context.Context, seatIDs []string) ([]*domain.Seat, error) {
	return r.findSeats(ctx, bson.M{"_id": bson.M{"$in": seatIDs}})
}

func (r *HallRepository) findSeats(ctx context.Context, filter bson.M) ([]*domain.Seat, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.seats.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "seat_code", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var seats []*domain.Seat
	for cursor.Next(ctx) {
		var seat domain.Seat
		if err := cursor.Decode(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, &seat)
	}
	return seats, cursor.Err()
}
