package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nimbuslab/weathergent/tools/openweather"
)

// NotAvailable is the sentinel for absent reading fields.
const NotAvailable = "N/A"

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

var titleCaser = cases.Title(language.English)

// Compass maps wind degrees onto the 16-point compass rose, clockwise from N.
// Values wrap at 360°.
func Compass(deg float64) string {
	idx := int(math.Round(deg/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// CloudIcon buckets cloud cover percent into an icon: overcast above 70,
// partly cloudy above 30, mostly clear otherwise.
func CloudIcon(cover int) string {
	switch {
	case cover > 70:
		return "☁️"
	case cover > 30:
		return "⛅"
	default:
		return "🌤️"
	}
}

// FormatVisibility renders visibility meters, switching to kilometers with one
// fractional digit at or above 1000 m.
func FormatVisibility(meters *int) string {
	if meters == nil {
		return NotAvailable
	}
	if *meters >= 1000 {
		return fmt.Sprintf("%.1f km", float64(*meters)/1000)
	}
	return fmt.Sprintf("%d m", *meters)
}

// FormatTime renders a unix timestamp as HH:MM. Zero means unknown.
func FormatTime(ts int64) string {
	if ts == 0 {
		return NotAvailable
	}
	return time.Unix(ts, 0).Format("15:04")
}

// Recommendations evaluates the fixed rule list in order: temperature,
// condition, wind. Rules fire only on present values; the result is never
// empty.
func Recommendations(r *openweather.Reading) []string {
	var recs []string
	if r.Main != nil && r.Main.Temp != nil {
		switch temp := *r.Main.Temp; {
		case temp < 5:
			recs = append(recs, "❄️ Heavy winter coat required")
		case temp < 15:
			recs = append(recs, "🧥 Light jacket recommended")
		case temp > 25:
			recs = append(recs, "🥤 Stay hydrated in the heat")
		}
	}
	if len(r.Weather) > 0 {
		switch cond := strings.ToLower(r.Weather[0].Main); {
		case strings.Contains(cond, "rain"):
			recs = append(recs, "☔ Umbrella essential")
		case strings.Contains(cond, "snow"):
			recs = append(recs, "🧤 Wear gloves and warm boots")
		case strings.Contains(cond, "clear"):
			recs = append(recs, "😎 Sunglasses recommended")
		}
	}
	if r.Wind != nil && r.Wind.Speed != nil && *r.Wind.Speed > 10 {
		recs = append(recs, "🧣 Windproof clothing suggested")
	}
	if len(recs) == 0 {
		return []string{"Normal conditions, no special precautions needed"}
	}
	return recs
}

// Render composes the full report from a reading. It is total over the Reading
// domain: every absent field renders as N/A.
func Render(r *openweather.Reading) string {
	name := r.Name
	if name == "" {
		name = "Unknown Location"
	}

	lat, lon := NotAvailable, NotAvailable
	if r.Coord != nil {
		if r.Coord.Latitude != nil {
			lat = formatFloat(*r.Coord.Latitude)
		}
		if r.Coord.Longitude != nil {
			lon = formatFloat(*r.Coord.Longitude)
		}
	}

	cloudCover := NotAvailable
	icon := CloudIcon(0)
	if r.Clouds != nil && r.Clouds.All != nil {
		cloudCover = fmt.Sprintf("%d%%", *r.Clouds.All)
		icon = CloudIcon(*r.Clouds.All)
	}

	var temp, feels, tempMin, tempMax, humidity, pressure *string
	if r.Main != nil {
		temp = floatWithUnit(r.Main.Temp, "°C")
		feels = floatWithUnit(r.Main.FeelsLike, "°C")
		tempMin = floatWithUnit(r.Main.TempMin, "°C")
		tempMax = floatWithUnit(r.Main.TempMax, "°C")
		humidity = intWithUnit(r.Main.Humidity, "%")
		pressure = intWithUnit(r.Main.Pressure, " hPa")
	}

	windSpeed := NotAvailable
	windDirection := NotAvailable
	if r.Wind != nil {
		if r.Wind.Speed != nil {
			windSpeed = fmt.Sprintf("%s m/s", formatFloat(*r.Wind.Speed))
		}
		if r.Wind.Deg != nil {
			windDirection = fmt.Sprintf("%s° (%s)", formatFloat(*r.Wind.Deg), Compass(*r.Wind.Deg))
		}
	}

	description := NotAvailable
	if len(r.Weather) > 0 && r.Weather[0].Description != "" {
		description = titleCaser.String(r.Weather[0].Description)
	}

	var sunrise, sunset int64
	if r.Sys != nil {
		sunrise = r.Sys.Sunrise
		sunset = r.Sys.Sunset
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s **Current Weather in %s**  \n", icon, name)
	fmt.Fprintf(&b, "📍 Coordinates: %s°N, %s°E  \n", lat, lon)
	fmt.Fprintf(&b, "🕒 Last Updated: %s  \n\n", FormatTime(r.Dt))

	b.WriteString("🌡️ **Temperature**  \n")
	fmt.Fprintf(&b, "- Current: %s (Feels like %s)  \n", orNA(temp), orNA(feels))
	fmt.Fprintf(&b, "- Range: %s ~ %s  \n", orNA(tempMin), orNA(tempMax))
	fmt.Fprintf(&b, "- Humidity: %s  \n", orNA(humidity))
	fmt.Fprintf(&b, "- Pressure: %s  \n\n", orNA(pressure))

	b.WriteString("💨 **Wind**  \n")
	fmt.Fprintf(&b, "- Speed: %s  \n", windSpeed)
	fmt.Fprintf(&b, "- Direction: %s  \n\n", windDirection)

	b.WriteString("☁️ **Conditions**  \n")
	fmt.Fprintf(&b, "- %s  \n", description)
	fmt.Fprintf(&b, "- Cloud Cover: %s  \n", cloudCover)
	fmt.Fprintf(&b, "- Visibility: %s  \n\n", FormatVisibility(r.Visibility))

	b.WriteString("🌅 **Sun Times**  \n")
	fmt.Fprintf(&b, "- Sunrise: %s  \n", FormatTime(sunrise))
	fmt.Fprintf(&b, "- Sunset: %s  \n\n", FormatTime(sunset))

	b.WriteString("💡 **Recommendations**  \n")
	for _, rec := range Recommendations(r) {
		fmt.Fprintf(&b, "- %s  \n", rec)
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func floatWithUnit(p *float64, unit string) *string {
	if p == nil {
		return nil
	}
	s := formatFloat(*p) + unit
	return &s
}

func intWithUnit(p *int, unit string) *string {
	if p == nil {
		return nil
	}
	s := strconv.Itoa(*p) + unit
	return &s
}

func orNA(p *string) string {
	if p == nil {
		return NotAvailable
	}
	return *p
}
