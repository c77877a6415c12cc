package backend

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// Room is one entry of the decoration service catalog. The backend grew out
// of a room-decoration service, hence the resource name.
type Room struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	PhotoURL    string  `json:"photoUrl"`
	Rating      float64 `json:"rating"`
}

// Rooms lists the service catalog. The catalog is public; no token needed.
func (c *Client) Rooms(ctx context.Context) ([]Room, error) {
	var rooms []Room
	if err := c.getJSON(ctx, "/rooms", "", &rooms); err != nil {
		return nil, errors.Wrap(err, "[Client.Rooms] list catalog")
	}
	return rooms, nil
}

// Room fetches a single catalog entry.
func (c *Client) Room(ctx context.Context, id string) (*Room, error) {
	var room Room
	if err := c.getJSON(ctx, "/rooms/"+url.PathEscape(id), "", &room); err != nil {
		return nil, errors.Wrapf(err, "[Client.Room] get %q", id)
	}
	return &room, nil
}
