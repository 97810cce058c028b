package cli

import (
	"github.com/spf13/cobra"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

type filterFlags struct {
	minMinutes   int
	maxMinutes   int
	role         string
	foot         string
	competitions []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.minMinutes, "min-minutes", -1, "Lower minutes bound (default: roster minimum)")
	cmd.Flags().IntVar(&f.maxMinutes, "max-minutes", -1, "Upper minutes bound (default: roster maximum)")
	cmd.Flags().StringVar(&f.role, "role", "", "Role id, e.g. right-back")
	cmd.Flags().StringVar(&f.foot, "foot", "", "Preferred foot: left, right, both or unknown")
	cmd.Flags().StringArrayVar(&f.competitions, "competition", nil, "Competition key 'region | competition | season', repeatable")
}

// input leaves unset minutes bounds nil so the service spans the roster.
func (f *filterFlags) input(cmd *cobra.Command) usecase.FilterInput {
	in := usecase.FilterInput{
		RoleID:          f.role,
		Foot:            f.foot,
		CompetitionKeys: f.competitions,
	}
	if cmd.Flags().Changed("min-minutes") {
		v := f.minMinutes
		in.MinMinutes = &v
	}
	if cmd.Flags().Changed("max-minutes") {
		v := f.maxMinutes
		in.MaxMinutes = &v
	}
	return in
}
