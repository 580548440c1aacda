package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Now é o relógio da barbearia; "hoje" nos relatórios é sempre este fuso.
func Now() time.Time {
	return time.Now().In(Location())
}
