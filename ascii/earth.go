package ascii

// Built-in world map used when no map image is on disk: 120x60
// equirectangular asset, longitude -180..180 left to right, latitude
// +90..-90 top to bottom, '#' land and ' ' ocean. Generated from an
// equirectangular projection PNG with cmd/mapconvert.
func EarthBitmap() *Bitmap {
	return BitmapFromRows(earthRows)
}

var earthRows = []string{
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                             # ####### #################                                    #                           ",
	"                       #    #   ### #################            ###                                                    ",
	"                      ###  ## ####       ############ #                        ##         ########        #####         ",
	"                  ## ###   #  ### ##      ###########                         #    #### ################   ###          ",
	"      ######## ###### #### # #  #  ###     #########              #######        # ## ##################################",
	" ### ###########################    ####   #####      #          ####### ###############################################",
	"      ########################       ##    ####                #### ####################################################",
	"      ### # #################      ##        #                ##### # ##########################################  ##    ",
	"                ##############     #####                   #     #  #######################################      ##     ",
	"                 ################ #######                # #   ###########################################      ##      ",
	"                  ########################                 ################################################             ",
	"                    ###################  ##                ################################################             ",
	"                   ################### #                    ##########  ####  ############################              ",
	"                   ##################                    ##### ##  ###    ### ##########################                ",
	"                   #################                     ###       # ######## ######################  #    #            ",
	"                    ###############                       #  ###       ##############################  #  #             ",
	"                     #############                        ######        #############################                   ",
	"                       ######## #                        ############################################                   ",
	"                      # ####     #                      ##################### #######################                   ",
	"                       # ###      #                    ################# ######    #################                    ",
	"                         ###  #   #                    ################## ######     ####  #####                        ",
	"                          #####   # #                  ################## #####      ###    ####                        ",
	"                             ####                      ################### ###       ##      ####   #                   ",
	"                               #    #                  ####################           #      # ##                       ",
	"                                #  #####                #####################         #      # #     ##                 ",
	"                                   ######                #### ###############          #      #    #                    ",
	"                                   ########                     ############                 ##   ##                    ",
	"                                  #########                     ###########                   #  ####                   ",
	"                                  #############                 ##########                    ##### #     ##            ",
	"                                 ################                ########                                  ## #         ",
	"                                  ###############                #########                         ## #    # #          ",
	"                                   #############                 #########                                              ",
	"                                   ############                  #########  #                         # ##  #           ",
	"                                     ##########                 #########  ##                        ########           ",
	"                                     ##########                  #######   ##                      ###########     #    ",
	"                                     ########                    #######   #                      #############         ",
	"                                     #######                     ######                           ##############        ",
	"                                     #######                      #####                            #############        ",
	"                                     ######                       ####                             ###   ######         ",
	"                                    #####                                                                  ####       # ",
	"                                    #####                                                                              #",
	"                                    ###                                                                      #        # ",
	"                                    ###                                                                             ##  ",
	"                                    ##                                                                                  ",
	"                                   ##                                                                                   ",
	"                                    ##                                                                                  ",
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                                       #                                                                                ",
	"                                      #                                #  ##########   ########################         ",
	"                                   #####                 ########################## #################################   ",
	"                  # ## #   #############              #############################################################     ",
	"        ## #########################             ##################################################################     ",
	"           ######################## #  #  ##     #################################################################      ",
	"    ##################################################################################################################  ",
	"########################################################################################################################",
}
