/* store.go
 * Contains the Store struct and NewStore function. The methods for this package are split across five
 * files, one per collection: seasons, configs, decks, profiles and matches. Each of these files contains
 * the methods for interacting with that part of the database
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Seasons  *mongo.Collection
		Configs  *mongo.Collection
		Decks    *mongo.Collection
		Profiles *mongo.Collection
		Matches  *mongo.Collection
	}
}

// NewStore initialises the db connection and sets the collection handles
// Preconditions: Receives strings containing the database name and the mongo connection URI
// Postconditions: Returns pointer to the Store object, or an error if the connection could not be made
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Seasons = db.Collection("seasons")
	s.Collections.Configs = db.Collection("configs")
	s.Collections.Decks = db.Collection("decks")
	s.Collections.Profiles = db.Collection("profiles")
	s.Collections.Matches = db.Collection("matches")

	return s, nil
}

// Disconnect closes the underlying mongo client. Called once at process shutdown
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
