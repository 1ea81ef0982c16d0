package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umuturukk/de-propulsion-v2.0/internal/model"
	"github.com/umuturukk/de-propulsion-v2.0/internal/propulsion"
)

var flowShaftKW float64

var powerFlowCmd = &cobra.Command{
	Use:   "power-flow",
	Short: "Break a shaft power down through motor, converter, switchboard and alternator",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject()
		if err != nil {
			return err
		}
		eff := cfg.Efficiencies
		f, err := propulsion.PowerFlow(flowShaftKW, eff)
		if err != nil {
			return err
		}
		transit, err := eff.DemandKW(model.ModeTransit, flowShaftKW, cfg.Vessel.AuxPowerKW)
		if err != nil {
			return err
		}
		maneuver, err := eff.DemandKW(model.ModeManeuver, flowShaftKW, cfg.Vessel.AuxPowerKW)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "stage\tpower_kw\tloss_kw")
		fmt.Fprintf(tw, "shaft\t%.1f\t\n", f.ShaftKW)
		fmt.Fprintf(tw, "motor input\t%.1f\t%.1f\n", f.MotorInputKW, f.Losses.MotorKW)
		fmt.Fprintf(tw, "converter input\t%.1f\t%.1f\n", f.ConverterInputKW, f.Losses.ConverterKW)
		fmt.Fprintf(tw, "switchboard input\t%.1f\t%.1f\n", f.SwitchboardInputKW, f.Losses.SwitchboardKW)
		fmt.Fprintf(tw, "alternator output\t%.1f\t\n", f.AlternatorOutputKW)
		fmt.Fprintf(tw, "alternator mech input\t%.1f\t%.1f\n", f.AlternatorMechInputKW, f.Losses.AlternatorKW)
		fmt.Fprintf(tw, "total losses\t\t%.1f\n", f.Losses.TotalKW())
		if err := tw.Flush(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\nDE demand, transit:  %.1f kW\n", transit)
		fmt.Fprintf(out, "DE demand, maneuver: %.1f kW (incl. %.0f kW aux)\n", maneuver, cfg.Vessel.AuxPowerKW)
		return nil
	},
}

func init() {
	powerFlowCmd.Flags().Float64Var(&flowShaftKW, "shaft", 0, "Shaft power, kW")
	_ = powerFlowCmd.MarkFlagRequired("shaft")
}
