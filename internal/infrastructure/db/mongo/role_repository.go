package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

const collectionRoles = "roles"

// RoleRepository implements ports.RoleRepository using MongoDB. The roles
// collection is seeded at deployment time and read once at startup.
type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles)}
}

type roleDoc struct {
	ID   int    `bson:"_id"`
	Name string `bson:"name"`
}

func (r *RoleRepository) ListAll(ctx context.Context) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var roles []domain.Role
	for cursor.Next(ctx) {
		var doc roleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		roles = append(roles, domain.Role{ID: doc.ID, Name: doc.Name})
	}
	return roles, cursor.Err()
}
