package server

import (
	"github.com/ayusman/gesturebeats/internal/synth"
)

type instrumentInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Waveform string   `json:"waveform"`
	Voices   []string `json:"voices"`
}

type instrumentsList struct {
	Instruments []instrumentInfo `json:"instruments"`
}

// instrumentsResponse builds the instrument catalog payload.
func instrumentsResponse() instrumentsList {
	catalog := synth.Catalog()
	resp := instrumentsList{
		Instruments: make([]instrumentInfo, 0, len(catalog)),
	}
	for _, inst := range catalog {
		resp.Instruments = append(resp.Instruments, instrumentInfo{
			ID:       inst.ID,
			Name:     inst.Name,
			Waveform: string(inst.Waveform),
			Voices:   append([]string(nil), inst.Voices...),
		})
	}
	return resp
}
