/*
 * IPTVProxy serves an M3U playlist through an Xtream-codes compatible API and stream proxy.
 * Copyright (C) 2025  Lucas Duport
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package xtream

import (
	"bytes"
	"encoding/xml"
	"time"
)

const (
	xmltvTimeLayout = "20060102150405 -0700"
	xmltvDoctype    = `<!DOCTYPE tv SYSTEM "xmltv.dtd">` + "\n"
	xmltvGenerator  = "IPTVProxy"
)

type xmltvDocument struct {
	XMLName    xml.Name         `xml:"tv"`
	Generator  string           `xml:"generator-info-name,attr"`
	Channels   []xmltvChannel   `xml:"channel"`
	Programmes []xmltvProgramme `xml:"programme"`
}

type xmltvChannel struct {
	ID          string    `xml:"id,attr"`
	DisplayName string    `xml:"display-name"`
	Icon        xmltvIcon `xml:"icon"`
}

type xmltvIcon struct {
	Src string `xml:"src,attr"`
}

type xmltvProgramme struct {
	Start   string    `xml:"start,attr"`
	Stop    string    `xml:"stop,attr"`
	Channel string    `xml:"channel,attr"`
	Title   xmltvText `xml:"title"`
	Desc    xmltvText `xml:"desc"`
}

type xmltvText struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

func xmltvTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(xmltvTimeLayout)
}

// XMLTV renders a two day guide for every channel of the current snapshot.
func (r *Responder) XMLTV() ([]byte, error) {
	c := r.store.Current()
	now := r.now()

	doc := xmltvDocument{Generator: xmltvGenerator}
	for i := range c.Channels {
		ch := &c.Channels[i]
		doc.Channels = append(doc.Channels, xmltvChannel{
			ID:          epgChannelID(ch),
			DisplayName: ch.Name,
			Icon:        xmltvIcon{Src: ch.Icon},
		})
	}
	for i := range c.Channels {
		for _, e := range generateEPG(&c.Channels[i], now, xmltvHorizon) {
			doc.Programmes = append(doc.Programmes, xmltvProgramme{
				Start:   xmltvTime(e.StartTimestamp),
				Stop:    xmltvTime(e.StopTimestamp),
				Channel: e.ChannelID,
				Title:   xmltvText{Lang: e.Lang, Value: e.Title},
				Desc:    xmltvText{Lang: e.Lang, Value: e.Description},
			})
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(xmltvDoctype)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
