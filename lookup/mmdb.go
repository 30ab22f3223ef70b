package lookup

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/oschwald/geoip2-golang"

	"github.com/f13rce/mapip/geo"
)

// MMDBResolver resolves against a local MaxMind City database instead of a
// geolocation web service. The public address itself still comes from the
// IP service; only the address-to-place step runs offline.
type MMDBResolver struct {
	http   *HTTPResolver
	reader *geoip2.Reader
}

// NewMMDBResolver opens the database at path. Callers must Close it.
func NewMMDBResolver(ipURL, path string, timeout time.Duration) (*MMDBResolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open MaxMind database: %w", err)
	}
	return &MMDBResolver{
		http:   NewHTTPResolver(ipURL, "", timeout),
		reader: reader,
	}, nil
}

func (r *MMDBResolver) Resolve(ctx context.Context) (geo.Location, error) {
	ip, err := r.http.publicIP(ctx)
	if err != nil {
		return geo.Location{}, err
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return geo.Location{}, fmt.Errorf("lookup: service returned invalid address %q", ip)
	}
	record, err := r.reader.City(parsed)
	if err != nil {
		return geo.Location{}, fmt.Errorf("MaxMind lookup for %s: %w", ip, err)
	}
	if record.Location.Latitude == 0 && record.Location.Longitude == 0 && record.City.GeoNameID == 0 {
		return geo.Location{}, ErrNoLocation
	}

	region := ""
	if len(record.Subdivisions) > 0 {
		region = record.Subdivisions[0].Names["en"]
	}
	return geo.Location{
		IP:      ip,
		Lat:     record.Location.Latitude,
		Lon:     record.Location.Longitude,
		City:    orUnknown(record.City.Names["en"]),
		Region:  orUnknown(region),
		Country: orUnknown(record.Country.IsoCode),
	}, nil
}

// Close releases the memory-mapped database.
func (r *MMDBResolver) Close() error {
	return r.reader.Close()
}
