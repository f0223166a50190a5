/*
 * IPTVProxy serves an M3U playlist through an Xtream-codes compatible API and stream proxy.
 * Copyright (C) 2020  Pierre-Emmanuel Jacquier
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

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/catalog"
	"github.com/gercyc/IPTVProxy/pkg/playlist"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <playlist>",
	Short: "Parse a playlist file and print the catalog it would produce",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), args[0], time.Now())
	},
}

func runValidate(out io.Writer, file string, now time.Time) error {
	p, err := playlist.ParseFile(file)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	kinds := p.CountByKind()
	counts := catalog.Build(p, file, now).Counts()

	fmt.Fprintf(out, "%s: %d entries\n", file, len(p.Entries))
	fmt.Fprintf(out, "  live:   %d channels in %d categories\n", kinds[playlist.KindLive], counts.LiveCategories)
	fmt.Fprintf(out, "  movie:  %d vods in %d categories\n", kinds[playlist.KindMovie], counts.VodCategories)
	fmt.Fprintf(out, "  series: %d series in %d categories\n", kinds[playlist.KindSeries], counts.SeriesCategories)
	return nil
}
