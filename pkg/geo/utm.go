package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MinUTMLatitude and MaxUTMLatitude bound the UTM latitude bands C..X
	MinUTMLatitude = -80.0
	MaxUTMLatitude = 84.0

	utmScale         = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0

	wgs84A = 6378137.0
	wgs84F = 1 / 298.257223563

	bandLetters = "CDEFGHJKLMNPQRSTUVWXX"
)

// Series coefficients for the WGS84 ellipsoid
var (
	e2  = wgs84F * (2 - wgs84F)
	e4  = e2 * e2
	e6  = e4 * e2
	ep2 = e2 / (1 - e2)

	m1 = 1 - e2/4 - 3*e4/64 - 5*e6/256
	m2 = 3*e2/8 + 3*e4/32 + 45*e6/1024
	m3 = 15*e4/256 + 45*e6/1024
	m4 = 35 * e6 / 3072

	n1 = (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	n2 = n1 * n1
	n3 = n2 * n1
	n4 = n3 * n1
	n5 = n4 * n1

	p2 = 3.0/2*n1 - 27.0/32*n3 + 269.0/512*n5
	p3 = 21.0/16*n2 - 55.0/32*n4
	p4 = 151.0/96*n3 - 417.0/128*n5
	p5 = 1097.0 / 512 * n4
)

// Zone identifies a UTM zone by number (1..60) and latitude band letter
type Zone struct {
	Number int
	Letter byte
}

// North reports whether the zone lies in the northern hemisphere
func (z Zone) North() bool {
	return z.Letter >= 'N'
}

func (z Zone) String() string {
	return strconv.Itoa(z.Number) + string(z.Letter)
}

// Valid reports whether the zone number and band letter exist
func (z Zone) Valid() bool {
	return z.Number >= 1 && z.Number <= 60 && strings.IndexByte(bandLetters, z.Letter) >= 0
}

// ParseZone parses zone strings such as "52S" or "33x"
func ParseZone(s string) (Zone, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Zone{}, fmt.Errorf("%w: zone %q", ErrInvalidCoordinate, s)
	}
	letter := strings.ToUpper(s[len(s)-1:])[0]
	number, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Zone{}, fmt.Errorf("%w: zone %q", ErrInvalidCoordinate, s)
	}
	z := Zone{Number: number, Letter: letter}
	if !z.Valid() {
		return Zone{}, fmt.Errorf("%w: zone %q", ErrInvalidCoordinate, s)
	}
	return z, nil
}

// UTM is a position in a Universal Transverse Mercator zone
type UTM struct {
	Easting  float64
	Northing float64
	Zone     Zone
}

// ZoneNumber returns the natural UTM zone for a position, including the
// Norway and Svalbard exceptions. Longitudes are snapped to 1e-9 degrees so
// values a rounding error away from a boundary resolve to the same zone as
// the boundary itself, which belongs to the zone east of it.
func ZoneNumber(lat, lon float64) int {
	lon = math.Round(lon*1e9) / 1e9
	if lon >= 180 || lon < -180 {
		lon = math.Mod(lon+180, 360)
		if lon < 0 {
			lon += 360
		}
		lon -= 180
	}

	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32
	}
	if lat >= 72 && lat <= 84 && lon >= 0 {
		switch {
		case lon < 9:
			return 31
		case lon < 21:
			return 33
		case lon < 33:
			return 35
		case lon < 42:
			return 37
		}
	}

	return int(math.Floor((lon+180)/6)) + 1
}

// BandLetter returns the latitude band letter, or 0 outside [-80, 84]
func BandLetter(lat float64) byte {
	if lat < MinUTMLatitude || lat > MaxUTMLatitude {
		return 0
	}
	return bandLetters[int(math.Floor(lat-MinUTMLatitude))>>3]
}

// CentralMeridian returns the central longitude of a zone in degrees
func CentralMeridian(zoneNumber int) float64 {
	return float64((zoneNumber-1)*6-180) + 3
}

// ToUTM projects a position into its natural UTM zone
func ToUTM(p LatLon) (UTM, error) {
	if err := checkUTMDomain(p); err != nil {
		return UTM{}, err
	}
	return toUTM(p, ZoneNumber(p.Lat, p.Lon)), nil
}

// ToUTMInZone projects a position into the given zone number, which may
// differ from its natural zone. Used to keep a trajectory in a single zone.
func ToUTMInZone(p LatLon, zoneNumber int) (UTM, error) {
	if err := checkUTMDomain(p); err != nil {
		return UTM{}, err
	}
	if zoneNumber < 1 || zoneNumber > 60 {
		return UTM{}, fmt.Errorf("%w: zone number %d", ErrOutOfRange, zoneNumber)
	}
	return toUTM(p, zoneNumber), nil
}

func checkUTMDomain(p LatLon) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidCoordinate, p)
	}
	if p.Lat < MinUTMLatitude || p.Lat > MaxUTMLatitude {
		return fmt.Errorf("%w: latitude %v outside UTM band [%v, %v]", ErrOutOfRange, p.Lat, MinUTMLatitude, MaxUTMLatitude)
	}
	return nil
}

func toUTM(p LatLon, zoneNumber int) UTM {
	latRad := p.Lat * math.Pi / 180
	sinLat, cosLat := math.Sincos(latRad)
	tanLat := sinLat / cosLat
	t2 := tanLat * tanLat
	t4 := t2 * t2

	centralRad := CentralMeridian(zoneNumber) * math.Pi / 180
	lonRad := p.Lon * math.Pi / 180

	nu := wgs84A / math.Sqrt(1-e2*sinLat*sinLat)
	c := ep2 * cosLat * cosLat
	a := cosLat * modAngle(lonRad-centralRad)
	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	m := wgs84A * (m1*latRad - m2*math.Sin(2*latRad) + m3*math.Sin(4*latRad) - m4*math.Sin(6*latRad))

	easting := utmScale*nu*(a+
		a3/6*(1-t2+c)+
		a5/120*(5-18*t2+t4+72*c-58*ep2)) + utmFalseEasting

	northing := utmScale * (m + nu*tanLat*(a2/2+
		a4/24*(5-t2+9*c+4*c*c)+
		a6/720*(61-58*t2+t4+600*c-330*ep2)))
	if p.Lat < 0 {
		northing += utmFalseNorthing
	}

	return UTM{
		Easting:  easting,
		Northing: northing,
		Zone:     Zone{Number: zoneNumber, Letter: BandLetter(p.Lat)},
	}
}

// FromUTM converts a UTM position back to geodetic. The zone letter selects
// the hemisphere.
func FromUTM(u UTM) (LatLon, error) {
	if !u.Zone.Valid() {
		return LatLon{}, fmt.Errorf("%w: zone %v", ErrInvalidCoordinate, u.Zone)
	}
	if !(u.Easting > 100000 && u.Easting < 1000000) {
		return LatLon{}, fmt.Errorf("%w: easting %v", ErrOutOfRange, u.Easting)
	}
	if !(u.Northing >= 0 && u.Northing <= utmFalseNorthing) {
		return LatLon{}, fmt.Errorf("%w: northing %v", ErrOutOfRange, u.Northing)
	}

	x := u.Easting - utmFalseEasting
	y := u.Northing
	if !u.Zone.North() {
		y -= utmFalseNorthing
	}

	mu := y / utmScale / (wgs84A * m1)
	footRad := mu + p2*math.Sin(2*mu) + p3*math.Sin(4*mu) + p4*math.Sin(6*mu) + p5*math.Sin(8*mu)

	sinF, cosF := math.Sincos(footRad)
	tanF := sinF / cosF
	ft2 := tanF * tanF
	ft4 := ft2 * ft2

	epSin := 1 - e2*sinF*sinF
	nu := wgs84A / math.Sqrt(epSin)
	r := (1 - e2) / epSin
	c := ep2 * cosF * cosF
	c2 := c * c

	d := x / (nu * utmScale)
	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	lat := footRad - (tanF/r)*(d2/2-
		d4/24*(5+3*ft2+10*c-4*c2-9*ep2)+
		d6/720*(61+90*ft2+298*c+45*ft4-252*ep2-3*c2))

	lon := (d -
		d3/6*(1+2*ft2+c) +
		d5/120*(5-2*c+28*ft2-3*c2+8*ep2+24*ft4)) / cosF
	lon = modAngle(lon + CentralMeridian(u.Zone.Number)*math.Pi/180)

	return LatLon{Lat: lat * 180 / math.Pi, Lon: lon * 180 / math.Pi}, nil
}

// modAngle wraps an angle in radians to [-pi, pi)
func modAngle(v float64) float64 {
	v = math.Mod(v+math.Pi, 2*math.Pi)
	if v < 0 {
		v += 2 * math.Pi
	}
	return v - math.Pi
}
